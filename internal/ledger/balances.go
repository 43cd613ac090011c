package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// AccountDirectory resolves account codes to accounts, for normal-side
// signing.
type AccountDirectory interface {
	Get(code string) (model.Account, bool)
}

// Balances sums every posted line within the range into a per-account
// closing balance, signed by each account's normal side: a debit-normal
// account's balance grows with debits, a credit-normal account's with
// credits, so a contra balance comes out negative. Openings seed the sums
// and may carry accounts with no movement. Lines referencing codes missing
// from the directory are skipped; the aggregator reports configuration gaps
// separately.
func Balances(entries []model.Entry, dir AccountDirectory, r DateRange, openings map[string]decimal.Decimal) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(openings))
	for code, b := range openings {
		balances[code] = b
	}

	for i := range entries {
		e := &entries[i]
		if e.Status != model.StatusPosted || !r.Contains(e.Date) {
			continue
		}
		for _, l := range e.Lines {
			acct, ok := dir.Get(l.AccountCode)
			if !ok {
				continue
			}
			signed := l.BaseDebit.Sub(l.BaseCredit)
			if acct.NormalSide() == model.SideCredit {
				signed = signed.Neg()
			}
			balances[l.AccountCode] = balances[l.AccountCode].Add(signed)
		}
	}
	return balances
}
