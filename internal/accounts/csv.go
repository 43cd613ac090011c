package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

const (
	numFields = 5
	colCode   = 0
	colName   = 1
	colCat    = 2
	colParent = 3
	colDesc   = 4
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"code", "name", "category", "parent_code", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(a model.Account) []string {
	row := make([]string, numFields)
	row[colCode] = a.Code
	row[colName] = a.Name
	row[colCat] = string(a.Category)
	row[colParent] = a.ParentCode
	row[colDesc] = a.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colCode] == "" {
		return model.Account{}, fmt.Errorf("empty account code")
	}

	category := model.AccountCategory(record[colCat])
	switch category {
	case model.CategoryAsset, model.CategoryLiability, model.CategoryEquity,
		model.CategoryRevenue, model.CategoryExpense:
	default:
		return model.Account{}, fmt.Errorf("unknown account category %q", record[colCat])
	}

	return model.Account{
		Code:        record[colCode],
		Name:        record[colName],
		Category:    category,
		ParentCode:  record[colParent],
		Description: record[colDesc],
	}, nil
}
