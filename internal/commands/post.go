package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/journal"
)

func newPostCommand(booksDir *string) *cobra.Command {
	var (
		dateStr     string
		reference   string
		description string
		debitSpecs  []string
		creditSpecs []string
		currency    string
		rateStr     string
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a journal entry",
		Long: `Post a balanced journal entry. Each --debit and --credit flag takes a
CODE:AMOUNT pair; an entry needs at least one of each and must balance
in the base currency. Foreign-currency entries set --currency and
--rate, which apply to every line of the entry.`,
		Example: `  ledgerline post --date 2025-03-10 --description "March hosting" \
    --debit 5100:24.00 --credit 1000:24.00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(*booksDir)
			if err != nil {
				return err
			}

			draft := journal.Draft{
				Reference:   reference,
				Description: description,
			}
			if dateStr != "" {
				draft.Date, err = parseDateFlag(dateStr, "date")
				if err != nil {
					return err
				}
			}

			var rate decimal.Decimal
			if rateStr != "" {
				rate, err = decimal.NewFromString(rateStr)
				if err != nil {
					return fmt.Errorf("invalid rate %q: %w", rateStr, err)
				}
			}

			for _, spec := range debitSpecs {
				line, err := parseLineSpec(spec, true, currency, rate)
				if err != nil {
					return err
				}
				draft.Lines = append(draft.Lines, line)
			}
			for _, spec := range creditSpecs {
				line, err := parseLineSpec(spec, false, currency, rate)
				if err != nil {
					return err
				}
				draft.Lines = append(draft.Lines, line)
			}

			entry, err := rt.journal.Post(draft)
			if err != nil {
				return err
			}

			if err := rt.recordAction("cli", "post", entry.Description, entry.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s (%s, %s %s)\n",
				entry.ID, entry.Date.Format(flagDateFormat),
				entry.TotalDebitBase.StringFixed(2), rt.base.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "entry date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&reference, "ref", "", "external reference")
	cmd.Flags().StringVar(&description, "description", "", "entry description")
	cmd.Flags().StringArrayVar(&debitSpecs, "debit", nil, "debit line as CODE:AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&creditSpecs, "credit", nil, "credit line as CODE:AMOUNT (repeatable)")
	cmd.Flags().StringVar(&currency, "currency", "", "line currency (default base)")
	cmd.Flags().StringVar(&rateStr, "rate", "", "exchange rate to base currency")

	return cmd
}

// parseLineSpec parses a CODE:AMOUNT flag value into a draft line.
func parseLineSpec(spec string, debit bool, currency string, rate decimal.Decimal) (journal.DraftLine, error) {
	code, amountStr, ok := strings.Cut(spec, ":")
	if !ok || code == "" {
		return journal.DraftLine{}, fmt.Errorf("invalid line %q (want CODE:AMOUNT)", spec)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return journal.DraftLine{}, fmt.Errorf("invalid amount in %q: %w", spec, err)
	}

	line := journal.DraftLine{
		AccountCode: code,
		Currency:    currency,
		Rate:        rate,
	}
	if debit {
		line.Debit = amount
	} else {
		line.Credit = amount
	}
	return line, nil
}
