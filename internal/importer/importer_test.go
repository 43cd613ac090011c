package importer

import (
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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

const sampleCSV = `date,description,amount,type
2025-01-03,GITHUB INC,-4.00,ACH_DEBIT
2025-01-10,ACME LLC INVOICE 12,1500.00,ACH_CREDIT
2025-01-12,FEE WAIVER,0.00,ADJUSTMENT
`

func TestGenericParser(t *testing.T) {
	txns, err := (&GenericParser{}).Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.True(t, txns[0].Amount.Equal(dec("-4.00")))
	assert.Equal(t, "GITHUB INC", txns[0].Description)
	assert.Equal(t, "ACH_DEBIT", txns[0].Type)
	assert.Equal(t, "bank_20250103_GITHUBINC", txns[0].Reference)
	assert.True(t, txns[1].Amount.Equal(dec("1500.00")))
}

func TestGenericParser_BadAmount(t *testing.T) {
	in := "date,description,amount,type\n2025-01-03,X,four,ACH_DEBIT\n"
	_, err := (&GenericParser{}).Parse(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestGenericParser_Empty(t *testing.T) {
	txns, err := (&GenericParser{}).Parse(strings.NewReader("date,description,amount,type\n"))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestDrafts(t *testing.T) {
	txns, err := (&GenericParser{}).Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	drafts := Drafts(txns, Accounts{Bank: "1000", Income: "4000", Expense: "5100"})
	require.Len(t, drafts, 2, "zero-amount rows are skipped")

	// Money out: expense debited, bank credited.
	out := drafts[0]
	assert.Equal(t, "5100", out.Lines[0].AccountCode)
	assert.True(t, out.Lines[0].Debit.Equal(dec("4.00")))
	assert.Equal(t, "1000", out.Lines[1].AccountCode)
	assert.True(t, out.Lines[1].Credit.Equal(dec("4.00")))

	// Money in: bank debited, income credited.
	in := drafts[1]
	assert.Equal(t, "1000", in.Lines[0].AccountCode)
	assert.True(t, in.Lines[0].Debit.Equal(dec("1500.00")))
	assert.Equal(t, "4000", in.Lines[1].AccountCode)
	assert.True(t, in.Lines[1].Credit.Equal(dec("1500.00")))
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.NotNil(t, r.Get("GENERIC"))
	assert.Nil(t, r.Get("chase"))

	assert.Panics(t, func() { r.Register(&GenericParser{}) })
}

func TestScanAndMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importPath := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "jan.csv"), []byte(sampleCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "notes.txt"), []byte("skip"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "jan.csv", files[0].Name)

	require.NoError(t, MarkProcessed(dir, "jan.csv"))

	files, err = Scan(dir)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "jan.csv"))
	require.NoError(t, err)
}

func TestScan_NoImportDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestDrafts_ReferenceCarriedThrough(t *testing.T) {
	txns := []model.BankTransaction{{
		Date:        time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		Description: "GITHUB INC",
		Amount:      dec("-4.00"),
		Reference:   "bank_20250103_GITHUBINC",
	}}
	drafts := Drafts(txns, Accounts{Bank: "1000", Income: "4000", Expense: "5100"})
	require.Len(t, drafts, 1)
	assert.Equal(t, "bank_20250103_GITHUBINC", drafts[0].Reference)
}
