package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// GenericParser parses the common four-column export shape most small-bank
// portals produce: date, description, amount, type. Negative amounts are
// money out.
type GenericParser struct{}

const (
	genericDateFormat = "2006-01-02"
	genericNumFields  = 4
	genericColDate    = 0
	genericColDesc    = 1
	genericColAmount  = 2
	genericColType    = 3
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic CSV and returns BankTransactions.
func (p *GenericParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading bank CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		txn, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseGenericRow(rec []string) (model.BankTransaction, error) {
	date, err := time.Parse(genericDateFormat, rec[genericColDate])
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing date %q: %w", rec[genericColDate], err)
	}

	amount, err := decimal.NewFromString(rec[genericColAmount])
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing amount %q: %w", rec[genericColAmount], err)
	}

	desc := rec[genericColDesc]
	return model.BankTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   makeRef(date, desc),
		Type:        rec[genericColType],
	}, nil
}

// makeRef creates a reference like bank_20250103_GITHUB so re-imports of
// the same feed are recognizable in the journal.
func makeRef(date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("bank_%s_%s", date.Format("20060102"), prefix)
}
