package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side identifies which half of a double entry a line records.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// EntryStatus represents the lifecycle state of a journal entry.
// An entry is created as a draft and transitions to posted exactly once;
// posted entries are never edited, only reversed by a new entry.
type EntryStatus string

const (
	StatusDraft  EntryStatus = "draft"
	StatusPosted EntryStatus = "posted"
)

// Line is one side of one account's movement within an Entry.
// Exactly one of Debit/Credit is non-zero, in the line's original currency.
// BaseDebit/BaseCredit carry the amount converted to the base currency,
// rounded once at posting time.
type Line struct {
	EntryID     string // "YYYY-MM-NNNx" where x = a,b,c...
	AccountCode string
	Description string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Currency    string          // e.g. "USD"; empty = base currency
	Rate        decimal.Decimal // exchange rate to base; 1 for base currency
	BaseDebit   decimal.Decimal
	BaseCredit  decimal.Decimal
}

// Side returns which side of the entry this line records.
func (l Line) Side() Side {
	if !l.Debit.IsZero() {
		return SideDebit
	}
	return SideCredit
}

// Entry is an immutable (once posted) unit of double-entry recording.
type Entry struct {
	ID              string // "YYYY-MM-NNN"
	Date            time.Time
	Reference       string
	Description     string
	Status          EntryStatus
	Lines           []Line
	TotalDebitBase  decimal.Decimal
	TotalCreditBase decimal.Decimal
}
