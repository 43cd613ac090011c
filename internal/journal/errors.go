package journal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorCode classifies a posting rejection. All codes are validation or
// consistency failures against the draft, never internal faults.
type ErrorCode string

const (
	// ErrEmptyEntry: fewer than two lines.
	ErrEmptyEntry ErrorCode = "empty_entry"
	// ErrUnknownAccount: a line references an account missing from the chart.
	ErrUnknownAccount ErrorCode = "unknown_account"
	// ErrNonPostableAccount: a line references a category root.
	ErrNonPostableAccount ErrorCode = "non_postable_account"
	// ErrAmbiguousOrEmptyLine: a line does not carry exactly one positive
	// amount on exactly one side. Both-zero and both-nonzero are the same
	// class, as is a negative amount on either side.
	ErrAmbiguousOrEmptyLine ErrorCode = "ambiguous_or_empty_line"
	// ErrInvalidExchangeRate: non-positive rate, or a base-currency line
	// whose rate is not exactly 1.
	ErrInvalidExchangeRate ErrorCode = "invalid_exchange_rate"
	// ErrUnbalancedEntry: debit and credit base totals differ beyond one
	// minor unit of the base currency.
	ErrUnbalancedEntry ErrorCode = "unbalanced_entry"
)

// ValidationError describes the first invariant violation found in a draft.
// Line is 1-based; zero means the violation is entry-level. The total and
// difference fields are populated only for ErrUnbalancedEntry.
type ValidationError struct {
	Code        ErrorCode
	Line        int
	AccountCode string
	Detail      string

	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal // TotalDebit - TotalCredit, signed
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", e.Code, e.Line, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func lineErr(code ErrorCode, line int, accountCode, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:        code,
		Line:        line,
		AccountCode: accountCode,
		Detail:      fmt.Sprintf(format, args...),
	}
}
