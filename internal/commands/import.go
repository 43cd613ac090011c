package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/importer"
)

func newImportCommand(booksDir *string) *cobra.Command {
	var (
		format  string
		bank    string
		income  string
		expense string
	)

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank CSV exports as journal entries",
		Long: `Import bank CSV files as balanced journal entries. With no arguments,
every CSV in the import/ directory is processed and moved to
import/processed/. Every imported entry goes through the same
validation as a manual post.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(*booksDir)
			if err != nil {
				return err
			}

			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			accts := importer.Accounts{Bank: bank, Income: income, Expense: expense}

			var files []importer.FileInfo
			if len(args) > 0 {
				for _, path := range args {
					files = append(files, importer.FileInfo{Name: path, Path: path})
				}
			} else {
				files, err = importer.Scan(rt.booksRoot)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
					return nil
				}
			}

			for _, file := range files {
				posted, err := importFile(rt, parser, accts, file.Path)
				if err != nil {
					return fmt.Errorf("importing %s: %w", file.Name, err)
				}
				if len(args) == 0 {
					if err := importer.MarkProcessed(rt.booksRoot, file.Name); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %d entries\n", file.Name, posted)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "bank CSV format")
	cmd.Flags().StringVar(&bank, "bank", "1000", "asset account for the bank feed")
	cmd.Flags().StringVar(&income, "income", "4000", "account credited for money in")
	cmd.Flags().StringVar(&expense, "expense", "5200", "account debited for money out")

	return cmd
}

func importFile(rt *runtime, parser importer.Parser, accts importer.Accounts, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	txns, err := parser.Parse(f)
	if err != nil {
		return 0, err
	}

	posted := 0
	for _, draft := range importer.Drafts(txns, accts) {
		entry, err := rt.journal.Post(draft)
		if err != nil {
			return posted, err
		}
		if err := rt.recordAction("import", "post", entry.Description, entry.ID); err != nil {
			return posted, err
		}
		posted++
	}
	return posted, nil
}
