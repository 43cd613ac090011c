package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draft is a journal entry before posting. Drafts are plain data and carry
// no derived amounts; everything derived is computed by the Poster.
type Draft struct {
	Date        time.Time
	Reference   string
	Description string
	Lines       []DraftLine
}

// DraftLine is one proposed line of a draft. Amounts are in the line's
// original currency; an empty Currency means the base currency. A zero Rate
// on a base-currency line defaults to 1 at posting time.
type DraftLine struct {
	AccountCode string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Currency    string
	Rate        decimal.Decimal
}
