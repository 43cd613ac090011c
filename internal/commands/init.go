package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/accounts"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/gitops"
	"github.com/ledgerline-dev/ledgerline/internal/statement"
)

func newInitCommand() *cobra.Command {
	var (
		name     string
		currency string
		useGit   bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a new books directory",
		Long: `Create a new books directory with a default chart of accounts,
statement layouts and configuration. The directory must be empty or
not yet exist.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			booksRoot, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving directory: %w", err)
			}
			if err := initBooks(booksRoot, name, currency, useGit); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized books in %s\n", booksRoot)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "My Business", "business name")
	cmd.Flags().StringVar(&currency, "currency", "USD", "base currency code")
	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository")

	return cmd
}

func initBooks(booksRoot, name, currency string, useGit bool) error {
	configPath := filepath.Join(booksRoot, "ledgerline.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already contains books", booksRoot)
	}

	for _, sub := range []string{"accounts", "reports", "logs", "import"} {
		if err := os.MkdirAll(filepath.Join(booksRoot, sub), 0o755); err != nil {
			return fmt.Errorf("creating %s dir: %w", sub, err)
		}
	}

	cfg := config.Default(name, currency)
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if err := accounts.NewIndex(accounts.DefaultChart()).Save(booksRoot); err != nil {
		return err
	}

	if err := statement.SaveLayout(filepath.Join(booksRoot, cfg.Reports.BalanceSheet), statement.DefaultBalanceSheet()); err != nil {
		return err
	}
	if err := statement.SaveLayout(filepath.Join(booksRoot, cfg.Reports.IncomeStatement), statement.DefaultIncomeStatement()); err != nil {
		return err
	}

	if useGit {
		if err := gitops.Init(booksRoot); err != nil {
			return err
		}
		if _, err := gitops.CommitBooks(booksRoot, "Initialize books", cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
			return err
		}
	}
	return nil
}
