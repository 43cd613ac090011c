package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/accounts"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/money"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func testPoster() *Poster {
	return &Poster{
		Accounts: accounts.NewIndex(accounts.DefaultChart()),
		Base:     money.Resolve("USD", nil),
	}
}

func asValidation(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr
}

func TestPost_TwoLineEntry(t *testing.T) {
	// Debit 1000 (Cash) 100.00, credit 4000 (Sales Revenue) 100.00.
	entry, err := testPoster().Post(Draft{
		Date:        date(2025, 1, 15),
		Description: "Cash sale",
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("100.00")},
			{AccountCode: "4000", Credit: dec("100.00")},
		},
	}, date(2025, 1, 31))
	require.NoError(t, err)

	assert.Equal(t, model.StatusPosted, entry.Status)
	assert.True(t, entry.TotalDebitBase.Equal(dec("100.00")))
	assert.True(t, entry.TotalCreditBase.Equal(dec("100.00")))
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, model.SideDebit, entry.Lines[0].Side())
	assert.Equal(t, model.SideCredit, entry.Lines[1].Side())
	assert.True(t, entry.Lines[0].BaseDebit.Equal(dec("100.00")))
	assert.Equal(t, "USD", entry.Lines[0].Currency)
	assert.True(t, entry.Lines[0].Rate.Equal(dec("1")))
}

func TestPost_SingleLine(t *testing.T) {
	_, err := testPoster().Post(Draft{
		Date:  date(2025, 1, 15),
		Lines: []DraftLine{{AccountCode: "1000", Debit: dec("100.00")}},
	}, date(2025, 1, 31))
	verr := asValidation(t, err)
	assert.Equal(t, ErrEmptyEntry, verr.Code)
}

func TestPost_NoLines(t *testing.T) {
	_, err := testPoster().Post(Draft{Date: date(2025, 1, 15)}, date(2025, 1, 31))
	verr := asValidation(t, err)
	assert.Equal(t, ErrEmptyEntry, verr.Code)
}

func TestPost_UnknownAccount(t *testing.T) {
	// Scenario: account 9999 is not in the chart. All-or-nothing: no entry.
	entry, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "9999", Debit: dec("50.00")},
			{AccountCode: "4000", Credit: dec("50.00")},
		},
	}, date(2025, 1, 31))
	verr := asValidation(t, err)
	assert.Equal(t, ErrUnknownAccount, verr.Code)
	assert.Equal(t, 1, verr.Line)
	assert.Equal(t, "9999", verr.AccountCode)
	assert.Empty(t, entry.Lines)
	assert.Empty(t, entry.Status)
}

func TestPost_CategoryRoot(t *testing.T) {
	_, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1", Debit: dec("50.00")},
			{AccountCode: "4000", Credit: dec("50.00")},
		},
	}, date(2025, 1, 31))
	verr := asValidation(t, err)
	assert.Equal(t, ErrNonPostableAccount, verr.Code)
}

func TestPost_BothSides(t *testing.T) {
	// Both-nonzero fails regardless of overall balance.
	_, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("100.00"), Credit: dec("100.00")},
			{AccountCode: "4000", Credit: dec("0.00")},
		},
	}, date(2025, 1, 31))
	verr := asValidation(t, err)
	assert.Equal(t, ErrAmbiguousOrEmptyLine, verr.Code)
	assert.Equal(t, 1, verr.Line)
}

func TestPost_NeitherSide(t *testing.T) {
	_, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("100.00")},
			{AccountCode: "4000"},
		},
	}, date(2025, 1, 31))
	verr := asValidation(t, err)
	assert.Equal(t, ErrAmbiguousOrEmptyLine, verr.Code)
	assert.Equal(t, 2, verr.Line)
}

func TestPost_NegativeAmount(t *testing.T) {
	_, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("-100.00")},
			{AccountCode: "4000", Credit: dec("-100.00")},
		},
	}, date(2025, 1, 31))
	verr := asValidation(t, err)
	assert.Equal(t, ErrAmbiguousOrEmptyLine, verr.Code)
}

func TestPost_BaseCurrencyRateDefaultsToOne(t *testing.T) {
	entry, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("10.00"), Currency: "usd"},
			{AccountCode: "4000", Credit: dec("10.00")},
		},
	}, date(2025, 1, 31))
	require.NoError(t, err)
	assert.True(t, entry.Lines[0].Rate.Equal(dec("1")))
	assert.Equal(t, "USD", entry.Lines[0].Currency)
}

func TestPost_BaseCurrencyRateOverride(t *testing.T) {
	// No silent override: a base-currency line with rate != 1 is rejected.
	_, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("10.00"), Currency: "USD", Rate: dec("1.1")},
			{AccountCode: "4000", Credit: dec("11.00")},
		},
	}, date(2025, 1, 31))
	verr := asValidation(t, err)
	assert.Equal(t, ErrInvalidExchangeRate, verr.Code)
}

func TestPost_ForeignCurrencyZeroRate(t *testing.T) {
	_, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("10.00"), Currency: "EUR"},
			{AccountCode: "4000", Credit: dec("10.00")},
		},
	}, date(2025, 1, 31))
	verr := asValidation(t, err)
	assert.Equal(t, ErrInvalidExchangeRate, verr.Code)
	assert.Equal(t, 1, verr.Line)
}

func TestPost_ForeignCurrencyConversion(t *testing.T) {
	// EUR 92.00 at 1.0875 = 100.05 after half-to-even rounding.
	entry, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("92.00"), Currency: "EUR", Rate: dec("1.0875")},
			{AccountCode: "4000", Credit: dec("100.05")},
		},
	}, date(2025, 1, 31))
	require.NoError(t, err)
	assert.True(t, entry.Lines[0].BaseDebit.Equal(dec("100.05")), "got %s", entry.Lines[0].BaseDebit)
	assert.True(t, entry.TotalDebitBase.Equal(entry.TotalCreditBase))
}

func TestPost_RoundingWithinTolerance(t *testing.T) {
	// 99.999 rounds to 100.00; the rounded difference is zero.
	entry, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("100.00")},
			{AccountCode: "4000", Credit: dec("99.999")},
		},
	}, date(2025, 1, 31))
	require.NoError(t, err)
	assert.True(t, entry.TotalCreditBase.Equal(dec("100.00")))
}

func TestPost_Unbalanced(t *testing.T) {
	_, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("100.00")},
			{AccountCode: "4000", Credit: dec("99.00")},
		},
	}, date(2025, 1, 31))
	verr := asValidation(t, err)
	assert.Equal(t, ErrUnbalancedEntry, verr.Code)
	assert.True(t, verr.TotalDebit.Equal(dec("100.00")))
	assert.True(t, verr.TotalCredit.Equal(dec("99.00")))
	assert.True(t, verr.Difference.Equal(dec("1.00")))
}

func TestPost_OneMinorUnitIsTolerated(t *testing.T) {
	entry, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("100.01")},
			{AccountCode: "4000", Credit: dec("100.00")},
		},
	}, date(2025, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, model.StatusPosted, entry.Status)
}

func TestPost_FailFastOrder(t *testing.T) {
	// Unknown account on line 1 and an ambiguous line 2: the referential
	// check runs first across all lines, so the unknown account wins.
	_, err := testPoster().Post(Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "9999", Debit: dec("10.00")},
			{AccountCode: "4000", Debit: dec("10.00"), Credit: dec("10.00")},
		},
	}, date(2025, 1, 31))
	verr := asValidation(t, err)
	assert.Equal(t, ErrUnknownAccount, verr.Code)
}

func TestPost_MultiLineSplit(t *testing.T) {
	entry, err := testPoster().Post(Draft{
		Date:        date(2025, 1, 15),
		Description: "Split purchase",
		Lines: []DraftLine{
			{AccountCode: "5100", Debit: dec("60.00")},
			{AccountCode: "5200", Debit: dec("40.00")},
			{AccountCode: "1000", Credit: dec("100.00")},
		},
	}, date(2025, 1, 31))
	require.NoError(t, err)
	assert.True(t, entry.TotalDebitBase.Equal(dec("100.00")))
	assert.True(t, entry.TotalCreditBase.Equal(dec("100.00")))
}

func TestPost_ZeroDateDefaultsToAsOf(t *testing.T) {
	asOf := date(2025, 3, 31)
	entry, err := testPoster().Post(Draft{
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("5.00")},
			{AccountCode: "4000", Credit: dec("5.00")},
		},
	}, asOf)
	require.NoError(t, err)
	assert.True(t, entry.Date.Equal(asOf))
}

func TestPost_DraftNotMutated(t *testing.T) {
	draft := Draft{
		Date: date(2025, 1, 15),
		Lines: []DraftLine{
			{AccountCode: "1000", Debit: dec("10.00"), Currency: "EUR", Rate: dec("2")},
			{AccountCode: "4000", Credit: dec("20.00")},
		},
	}
	_, err := testPoster().Post(draft, date(2025, 1, 31))
	require.NoError(t, err)
	assert.True(t, draft.Lines[0].Rate.Equal(dec("2")))
	assert.Empty(t, draft.Lines[0].Description)
}
