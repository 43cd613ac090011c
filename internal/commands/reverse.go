package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newReverseCommand(booksDir *string) *cobra.Command {
	var (
		dateStr string
		reason  string
	)

	cmd := &cobra.Command{
		Use:   "reverse ENTRY_ID",
		Short: "Post a correcting entry that reverses a posted entry",
		Long: `Post a new entry that mirrors every line of the original, with debits
and credits swapped. The original entry is never edited; the reversal
references it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(*booksDir)
			if err != nil {
				return err
			}

			date := time.Now().UTC()
			if dateStr != "" {
				date, err = parseDateFlag(dateStr, "date")
				if err != nil {
					return err
				}
			}

			entry, err := rt.journal.Reverse(args[0], date, reason)
			if err != nil {
				return err
			}

			if err := rt.recordAction("cli", "reverse", entry.Description, entry.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s reversing %s\n", entry.ID, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "reversal date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&reason, "reason", "", "why the entry is being reversed")

	return cmd
}
