package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Index provides in-memory lookup over the chart of accounts.
type Index struct {
	accounts []model.Account
	byCode   map[string]model.Account
}

// NewIndex creates an Index from a slice of accounts.
func NewIndex(accounts []model.Account) *Index {
	byCode := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a
	}
	return &Index{accounts: accounts, byCode: byCode}
}

// Load reads chart-of-accounts.csv from a books root and returns an Index.
func Load(booksRoot string) (*Index, error) {
	path := filepath.Join(booksRoot, "accounts", "chart-of-accounts.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewIndex(accts), nil
}

// All returns all accounts in chart order.
func (x *Index) All() []model.Account {
	return x.accounts
}

// Get returns an account by code.
func (x *Index) Get(code string) (model.Account, bool) {
	a, ok := x.byCode[code]
	return a, ok
}

// Exists reports whether an account code exists.
func (x *Index) Exists(code string) bool {
	_, ok := x.byCode[code]
	return ok
}

// ByCategory returns all accounts of the given category.
func (x *Index) ByCategory(category model.AccountCategory) []model.Account {
	var result []model.Account
	for _, a := range x.accounts {
		if a.Category == category {
			result = append(result, a)
		}
	}
	return result
}

// Postable returns all non-root accounts.
func (x *Index) Postable() []model.Account {
	var result []model.Account
	for _, a := range x.accounts {
		if a.Postable() {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (x *Index) Save(booksRoot string) error {
	dir := filepath.Join(booksRoot, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	path := filepath.Join(dir, "chart-of-accounts.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, x.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
