// Package ledger derives per-account running-balance views from posted
// journal entries. Projections are pure: the same entries, opening balance
// and range always produce the same rows.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// DateRange is an inclusive calendar-date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls within the range.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Opening is an account's balance snapshot carried into a projection,
// expressed on the account's normal side.
type Opening struct {
	Date    time.Time
	Balance decimal.Decimal
}

// Row is one line of a projected ledger: a posted journal line attributed
// to one account, or the synthetic opening-balance row. Debit and Credit
// are base-currency amounts; Balance is the running balance after this row.
type Row struct {
	EntryID     string
	Date        time.Time
	Description string
	Reference   string
	Currency    string
	Rate        decimal.Decimal
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
	Opening     bool
}

// Project replays every posted line touching the account within the range
// and emits rows with a running balance. Lines are ordered by entry date,
// then by the order entries and lines were supplied — insertion order is
// the only tie-break for same-day entries, so callers must pass entries in
// store order.
//
// The opening row, when present, always comes first, whether or not its
// date falls inside the range. An account with no matching lines yields
// just the opening row, or an empty ledger; never an error. A range with
// Start after End matches nothing.
func Project(account model.Account, entries []model.Entry, opening *Opening, r DateRange) []Row {
	var rows []Row

	balance := decimal.Zero
	if opening != nil {
		balance = opening.Balance
		rows = append(rows, Row{
			Date:        opening.Date,
			Description: "Opening balance",
			Balance:     balance,
			Opening:     true,
		})
	}

	type sourced struct {
		entry *model.Entry
		line  *model.Line
	}
	var matched []sourced
	for i := range entries {
		e := &entries[i]
		if e.Status != model.StatusPosted || !r.Contains(e.Date) {
			continue
		}
		for j := range e.Lines {
			l := &e.Lines[j]
			if l.AccountCode != account.Code {
				continue
			}
			matched = append(matched, sourced{entry: e, line: l})
		}
	}

	// Stable sort by date only: equal dates keep insertion order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].entry.Date.Before(matched[j].entry.Date)
	})

	debitNormal := account.NormalSide() == model.SideDebit
	for _, m := range matched {
		signed := m.line.BaseDebit.Sub(m.line.BaseCredit)
		if !debitNormal {
			signed = signed.Neg()
		}
		balance = balance.Add(signed)

		rows = append(rows, Row{
			EntryID:     m.line.EntryID,
			Date:        m.entry.Date,
			Description: lineDescription(m.entry, m.line),
			Reference:   m.entry.Reference,
			Currency:    m.line.Currency,
			Rate:        m.line.Rate,
			Debit:       m.line.BaseDebit,
			Credit:      m.line.BaseCredit,
			Balance:     balance,
		})
	}
	return rows
}

func lineDescription(e *model.Entry, l *model.Line) string {
	if l.Description != "" {
		return l.Description
	}
	return e.Description
}
