// Package money centralizes currency metadata and monetary rounding.
// All base-amount rounding in the module goes through Currency.Round so the
// balance check and the ledger projection always agree bit-for-bit.
package money

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is a currency code plus its minor-unit count (decimal places).
type Currency struct {
	Code       string
	MinorUnits int
}

// Resolve looks up a currency by code. Overrides win over the ISO table;
// unknown codes fall back to 2 minor units.
func Resolve(code string, overrides map[string]int) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if n, ok := overrides[code]; ok {
		return Currency{Code: code, MinorUnits: n}
	}
	if c := gomoney.GetCurrency(code); c != nil {
		return Currency{Code: code, MinorUnits: c.Fraction}
	}
	return Currency{Code: code, MinorUnits: 2}
}

// Round rounds d to the currency's minor-unit precision, half to even.
func (c Currency) Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(int32(c.MinorUnits))
}

// Tolerance returns one minor unit: the maximum acceptable rounding
// discrepancy between total debits and total credits of an entry.
func (c Currency) Tolerance() decimal.Decimal {
	return decimal.New(1, -int32(c.MinorUnits))
}
