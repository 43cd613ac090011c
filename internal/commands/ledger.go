package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/accounts"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
)

func newLedgerCommand(booksDir *string) *cobra.Command {
	var (
		fromStr string
		toStr   string
	)

	cmd := &cobra.Command{
		Use:   "ledger ACCOUNT_CODE",
		Short: "Show an account's ledger with running balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(*booksDir)
			if err != nil {
				return err
			}

			account, ok := rt.accounts.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown account %q", args[0])
			}

			r, err := parseRange(fromStr, toStr)
			if err != nil {
				return err
			}

			entries, err := rt.journal.ReadAll()
			if err != nil {
				return err
			}

			openings, err := accounts.LoadOpeningBalances(rt.booksRoot)
			if err != nil {
				return err
			}
			var opening *ledger.Opening
			if ob, ok := openings[account.Code]; ok {
				opening = &ledger.Opening{Date: ob.AsOf, Balance: ob.Balance}
			}

			rows := ledger.Project(account, entries, opening, r)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s)\n", account.Code, account.Name, rt.base.Code)
			w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tENTRY\tDESCRIPTION\tDEBIT\tCREDIT\tBALANCE")
			for _, row := range rows {
				if row.Opening {
					fmt.Fprintf(w, "%s\t\t%s\t\t\t%s\n",
						row.Date.Format(flagDateFormat), row.Description, row.Balance.StringFixed(2))
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					row.Date.Format(flagDateFormat), row.EntryID, row.Description,
					row.Debit.StringFixed(2), row.Credit.StringFixed(2), row.Balance.StringFixed(2))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "start date (YYYY-MM-DD, default beginning of books)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (YYYY-MM-DD, default today)")

	return cmd
}

// parseRange turns optional --from/--to values into an inclusive range.
// An empty from means the beginning of the books, an empty to means today.
func parseRange(fromStr, toStr string) (ledger.DateRange, error) {
	r := ledger.DateRange{
		Start: time.Time{},
		End:   time.Now().UTC(),
	}
	var err error
	if fromStr != "" {
		r.Start, err = parseDateFlag(fromStr, "from")
		if err != nil {
			return ledger.DateRange{}, err
		}
	}
	if toStr != "" {
		r.End, err = parseDateFlag(toStr, "to")
		if err != nil {
			return ledger.DateRange{}, err
		}
	}
	return r, nil
}
