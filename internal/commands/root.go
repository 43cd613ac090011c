package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var booksDir string

	rootCmd := &cobra.Command{
		Use:     "ledgerline",
		Short:   "Plain-file double-entry bookkeeping",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&booksDir, "books", ".", "books directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newPostCommand(&booksDir))
	rootCmd.AddCommand(newReverseCommand(&booksDir))
	rootCmd.AddCommand(newLedgerCommand(&booksDir))
	rootCmd.AddCommand(newStatementCommand(&booksDir))
	rootCmd.AddCommand(newImportCommand(&booksDir))

	return rootCmd
}
