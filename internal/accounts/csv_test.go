package accounts

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func TestAccountsRoundTrip(t *testing.T) {
	accts := []model.Account{
		{Code: "1", Name: "Assets", Category: model.CategoryAsset},
		{Code: "1000", Name: "Cash", Category: model.CategoryAsset, ParentCode: "1", Description: "Checking"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accts))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, accts, got)
}

func TestUnmarshalAccount_BadCategory(t *testing.T) {
	_, err := UnmarshalAccount([]string{"1000", "Cash", "treasure", "1", ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestUnmarshalAccount_EmptyCode(t *testing.T) {
	_, err := UnmarshalAccount([]string{"", "Cash", "asset", "1", ""})
	assert.Error(t, err)
}

func TestReadAccounts_FieldCountMismatch(t *testing.T) {
	in := strings.NewReader("code,name,category,parent_code,description\n1000,Cash,asset\n")
	_, err := ReadAccounts(in)
	assert.Error(t, err)
}

func TestOpeningBalancesRoundTrip(t *testing.T) {
	balances := []OpeningBalance{
		{AccountCode: "1000", AsOf: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Balance: decimal.RequireFromString("500.00")},
		{AccountCode: "2100", AsOf: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Balance: decimal.RequireFromString("-120.50")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOpeningBalances(&buf, balances))

	got, err := ReadOpeningBalances(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1000", got[0].AccountCode)
	assert.True(t, got[0].Balance.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, got[1].Balance.IsNegative())
}

func TestLoadOpeningBalances_MissingFile(t *testing.T) {
	got, err := LoadOpeningBalances(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoadOpeningBalances(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "accounts"), 0o755))

	f, err := os.Create(filepath.Join(dir, "accounts", "opening-balances.csv"))
	require.NoError(t, err)
	require.NoError(t, WriteOpeningBalances(f, []OpeningBalance{
		{AccountCode: "1000", AsOf: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Balance: decimal.RequireFromString("500.00")},
	}))
	require.NoError(t, f.Close())

	byCode, err := LoadOpeningBalances(dir)
	require.NoError(t, err)
	require.Contains(t, byCode, "1000")
	assert.True(t, byCode["1000"].Balance.Equal(decimal.RequireFromString("500")))
}
