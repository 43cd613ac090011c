package journal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/money"
)

// AccountResolver looks up accounts in the chart of accounts.
type AccountResolver interface {
	Get(code string) (model.Account, bool)
}

// Poster validates drafts and turns them into immutable posted entries.
// It is a pure computation over its inputs: it never touches storage and
// never mutates account state.
type Poster struct {
	Accounts AccountResolver
	Base     money.Currency
}

// Post enforces the double-entry invariants on a draft and returns the
// posted entry, or the first violation found. Rules are checked in a fixed
// order, lines scanned in entry order within each rule, so a draft with
// several problems always reports the same one. On failure nothing is
// produced; the draft itself is never modified.
func (p *Poster) Post(draft Draft, asOf time.Time) (model.Entry, error) {
	// Rule 1: at least two lines.
	if len(draft.Lines) < 2 {
		return model.Entry{}, &ValidationError{
			Code:   ErrEmptyEntry,
			Detail: "an entry needs at least two lines",
		}
	}

	// Rule 2: every line references an existing, postable account.
	for i, l := range draft.Lines {
		acct, ok := p.Accounts.Get(l.AccountCode)
		if !ok {
			return model.Entry{}, lineErr(ErrUnknownAccount, i+1, l.AccountCode,
				"unknown account %q", l.AccountCode)
		}
		if !acct.Postable() {
			return model.Entry{}, lineErr(ErrNonPostableAccount, i+1, l.AccountCode,
				"account %q is a category root and cannot be posted to", l.AccountCode)
		}
	}

	// Rule 3: exactly one side carries a positive amount.
	for i, l := range draft.Lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return model.Entry{}, lineErr(ErrAmbiguousOrEmptyLine, i+1, l.AccountCode,
				"amounts must be positive")
		}
		hasDebit := l.Debit.IsPositive()
		hasCredit := l.Credit.IsPositive()
		if hasDebit == hasCredit {
			return model.Entry{}, lineErr(ErrAmbiguousOrEmptyLine, i+1, l.AccountCode,
				"a line must carry exactly one of debit or credit")
		}
	}

	// Rule 4: positive exchange rate; base-currency lines pin the rate at 1.
	rates := make([]decimal.Decimal, len(draft.Lines))
	for i, l := range draft.Lines {
		rate := l.Rate
		if p.isBase(l.Currency) {
			if rate.IsZero() {
				rate = decimal.NewFromInt(1)
			}
			if !rate.Equal(decimal.NewFromInt(1)) {
				return model.Entry{}, lineErr(ErrInvalidExchangeRate, i+1, l.AccountCode,
					"base currency line must have exchange rate 1, got %s", rate)
			}
		} else if !rate.IsPositive() {
			return model.Entry{}, lineErr(ErrInvalidExchangeRate, i+1, l.AccountCode,
				"exchange rate must be positive, got %s", rate)
		}
		rates[i] = rate
	}

	// Rule 5: base amount per line = amount x rate, rounded half to even to
	// the base currency's minor-unit precision.
	lines := make([]model.Line, len(draft.Lines))
	for i, l := range draft.Lines {
		lines[i] = model.Line{
			AccountCode: l.AccountCode,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Currency:    p.storedCurrency(l.Currency),
			Rate:        rates[i],
			BaseDebit:   p.Base.Round(l.Debit.Mul(rates[i])),
			BaseCredit:  p.Base.Round(l.Credit.Mul(rates[i])),
		}
	}

	// Rule 6: debits equal credits within one minor unit of the base
	// currency, absorbing per-line rounding.
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.BaseDebit)
		totalCredit = totalCredit.Add(l.BaseCredit)
	}
	diff := totalDebit.Sub(totalCredit)
	if diff.Abs().GreaterThan(p.Base.Tolerance()) {
		return model.Entry{}, &ValidationError{
			Code:        ErrUnbalancedEntry,
			Detail:      "debits (" + totalDebit.String() + ") != credits (" + totalCredit.String() + ")",
			TotalDebit:  totalDebit,
			TotalCredit: totalCredit,
			Difference:  diff,
		}
	}

	date := draft.Date
	if date.IsZero() {
		date = asOf
	}

	return model.Entry{
		Date:            date,
		Reference:       draft.Reference,
		Description:     draft.Description,
		Status:          model.StatusPosted,
		Lines:           lines,
		TotalDebitBase:  totalDebit,
		TotalCreditBase: totalCredit,
	}, nil
}

func (p *Poster) isBase(currency string) bool {
	return currency == "" || strings.EqualFold(currency, p.Base.Code)
}

func (p *Poster) storedCurrency(currency string) string {
	if currency == "" {
		return p.Base.Code
	}
	return strings.ToUpper(currency)
}
