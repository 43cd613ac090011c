package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/accounts"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
	"github.com/ledgerline-dev/ledgerline/internal/statement"
)

func newStatementCommand(booksDir *string) *cobra.Command {
	var (
		fromStr      string
		toStr        string
		priorFromStr string
		priorToStr   string
	)

	cmd := &cobra.Command{
		Use:   "statement (balance-sheet|income)",
		Short: "Aggregate account balances into a statement",
		Long: `Aggregate posted entries into a statement using the layout configured
in ledgerline.yaml. Pass --prior-from/--prior-to to add a comparison
column against an earlier period.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"balance-sheet", "income"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(*booksDir)
			if err != nil {
				return err
			}

			var layoutPath string
			switch args[0] {
			case "balance-sheet":
				layoutPath = rt.cfg.Reports.BalanceSheet
			case "income":
				layoutPath = rt.cfg.Reports.IncomeStatement
			default:
				return fmt.Errorf("unknown statement %q (want balance-sheet or income)", args[0])
			}

			layout, err := statement.LoadLayout(filepath.Join(rt.booksRoot, layoutPath))
			if err != nil {
				return err
			}

			r, err := parseRange(fromStr, toStr)
			if err != nil {
				return err
			}

			entries, err := rt.journal.ReadAll()
			if err != nil {
				return err
			}

			// Opening balances carry into point-in-time statements only;
			// period statements start every account from zero.
			var openings map[string]decimal.Decimal
			if layout.Kind == statement.KindTotal {
				loaded, err := accounts.LoadOpeningBalances(rt.booksRoot)
				if err != nil {
					return err
				}
				if len(loaded) > 0 {
					openings = make(map[string]decimal.Decimal, len(loaded))
					for code, ob := range loaded {
						openings[code] = ob.Balance
					}
				}
			}

			balances := ledger.Balances(entries, rt.accounts, r, openings)

			var prior map[string]decimal.Decimal
			if priorFromStr != "" || priorToStr != "" {
				pr, err := parseRange(priorFromStr, priorToStr)
				if err != nil {
					return err
				}
				prior = ledger.Balances(entries, rt.accounts, pr, openings)
			}

			stmt := statement.Aggregate(*layout, balances, prior)
			return printStatement(cmd, rt.base.Code, stmt)
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "start date (YYYY-MM-DD, default beginning of books)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&priorFromStr, "prior-from", "", "comparison period start date")
	cmd.Flags().StringVar(&priorToStr, "prior-to", "", "comparison period end date")

	return cmd
}

func printStatement(cmd *cobra.Command, baseCode string, stmt statement.Statement) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", stmt.Name, baseCode)

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', tabwriter.AlignRight)
	if stmt.HasPrior {
		fmt.Fprintln(w, "\tCURRENT\tPRIOR\tDELTA\t")
	}
	for _, g := range stmt.Groups {
		for _, l := range g.Lines {
			writeFigures(w, "  "+l.Code, stmt.HasPrior, l.Amount, l.Prior, l.Delta)
		}
		writeFigures(w, g.Name, stmt.HasPrior, g.Subtotal, g.Prior, g.Delta)
	}
	if stmt.Kind == statement.KindIncome {
		writeFigures(w, "Profit before tax", stmt.HasPrior,
			stmt.ProfitBeforeTax, stmt.PriorProfitBeforeTax, stmt.ProfitBeforeTax.Sub(stmt.PriorProfitBeforeTax))
		writeFigures(w, "Net profit", stmt.HasPrior,
			stmt.NetProfit, stmt.PriorNetProfit, stmt.NetProfit.Sub(stmt.PriorNetProfit))
	} else {
		writeFigures(w, "Total", stmt.HasPrior, stmt.GrandTotal, stmt.PriorTotal, stmt.TotalDelta)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(stmt.Unassigned) > 0 {
		fmt.Fprintf(out, "\nUnassigned accounts (not in any group): %s\n", strings.Join(stmt.Unassigned, ", "))
	}
	return nil
}

func writeFigures(w *tabwriter.Writer, label string, hasPrior bool, amount, prior, delta decimal.Decimal) {
	if hasPrior {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", label, amount.StringFixed(2), prior.StringFixed(2), delta.StringFixed(2))
		return
	}
	fmt.Fprintf(w, "%s\t%s\t\n", label, amount.StringFixed(2))
}
