package accounts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalance is a snapshot balance for one account as of a given date,
// expressed on the account's normal side. The ledger projector seeds its
// running balance from it.
type OpeningBalance struct {
	AccountCode string
	AsOf        time.Time
	Balance     decimal.Decimal
}

const openingDateFormat = "2006-01-02"

// ReadOpeningBalances reads an opening-balances.csv stream.
func ReadOpeningBalances(r io.Reader) ([]OpeningBalance, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading opening balances CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var balances []OpeningBalance
	for i, rec := range records[1:] {
		asOf, err := time.Parse(openingDateFormat, rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing as_of %q: %w", i+2, rec[1], err)
		}
		bal, err := decimal.NewFromString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing balance %q: %w", i+2, rec[2], err)
		}
		balances = append(balances, OpeningBalance{
			AccountCode: rec[0],
			AsOf:        asOf,
			Balance:     bal,
		})
	}
	return balances, nil
}

// WriteOpeningBalances writes an opening-balances.csv stream.
func WriteOpeningBalances(w io.Writer, balances []OpeningBalance) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"account_code", "as_of", "balance"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, b := range balances {
		row := []string{b.AccountCode, b.AsOf.Format(openingDateFormat), b.Balance.StringFixed(2)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// LoadOpeningBalances reads accounts/opening-balances.csv from a books root.
// A missing file means no opening balances, not an error.
func LoadOpeningBalances(booksRoot string) (map[string]OpeningBalance, error) {
	path := filepath.Join(booksRoot, "accounts", "opening-balances.csv")
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	balances, err := ReadOpeningBalances(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	byCode := make(map[string]OpeningBalance, len(balances))
	for _, b := range balances {
		byCode[b.AccountCode] = b
	}
	return byCode, nil
}
