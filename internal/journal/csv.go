package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Header is the CSV header for journal.csv. One row per line; entry-level
// fields repeat on every row of the entry. Only posted entries are ever
// written, so there is no status column.
const Header = "line_id,date,reference,description,account_code,line_description,debit,credit,currency,rate,base_debit,base_credit"

const (
	numFields   = 12
	dateFormat  = "2006-01-02"
	colLineID   = 0
	colDate     = 1
	colRef      = 2
	colDesc     = 3
	colAcct     = 4
	colLineDesc = 5
	colDebit    = 6
	colCredit   = 7
	colCurrency = 8
	colRate     = 9
	colBaseDr   = 10
	colBaseCr   = 11
)

// ReadEntries reads all posted entries from a journal.csv reader, grouping
// rows back into entries. File order is preserved: it is the insertion
// order the ledger projector relies on for same-day entries.
func ReadEntries(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.Entry
	byID := make(map[string]int)
	for i, rec := range records[1:] {
		line, entryMeta, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		group := id.EntryGroup(line.EntryID)
		idx, seen := byID[group]
		if !seen {
			entryMeta.ID = group
			entries = append(entries, entryMeta)
			idx = len(entries) - 1
			byID[group] = idx
		}
		e := &entries[idx]
		e.Lines = append(e.Lines, line)
		e.TotalDebitBase = e.TotalDebitBase.Add(line.BaseDebit)
		e.TotalCreditBase = e.TotalCreditBase.Add(line.BaseCredit)
	}
	return entries, nil
}

// WriteEntries writes entries to a journal.csv writer (including header).
func WriteEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range entries {
		if err := writeEntry(cw, e); err != nil {
			return err
		}
	}
	return cw.Error()
}

// AppendEntry appends one entry's rows to an existing journal.csv writer
// (no header).
func AppendEntry(w io.Writer, e model.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeEntry(cw, e); err != nil {
		return err
	}
	return cw.Error()
}

func writeEntry(cw *csv.Writer, e model.Entry) error {
	for i, line := range e.Lines {
		if err := cw.Write(marshalRow(e, line)); err != nil {
			return fmt.Errorf("writing entry %s line %d: %w", e.ID, i, err)
		}
	}
	return nil
}

func marshalRow(e model.Entry, line model.Line) []string {
	row := make([]string, numFields)
	row[colLineID] = line.EntryID
	row[colDate] = e.Date.Format(dateFormat)
	row[colRef] = e.Reference
	row[colDesc] = e.Description
	row[colAcct] = line.AccountCode
	row[colLineDesc] = line.Description

	if !line.Debit.IsZero() {
		row[colDebit] = line.Debit.String()
		row[colBaseDr] = line.BaseDebit.String()
	}
	if !line.Credit.IsZero() {
		row[colCredit] = line.Credit.String()
		row[colBaseCr] = line.BaseCredit.String()
	}

	row[colCurrency] = line.Currency
	row[colRate] = line.Rate.String()
	return row
}

func unmarshalRow(record []string) (model.Line, model.Entry, error) {
	if len(record) != numFields {
		return model.Line{}, model.Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Line{}, model.Entry{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	parseOpt := func(col int, name string) (decimal.Decimal, error) {
		if record[col] == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(record[col])
		if err != nil {
			return decimal.Zero, fmt.Errorf("parsing %s %q: %w", name, record[col], err)
		}
		return d, nil
	}

	debit, err := parseOpt(colDebit, "debit")
	if err != nil {
		return model.Line{}, model.Entry{}, err
	}
	credit, err := parseOpt(colCredit, "credit")
	if err != nil {
		return model.Line{}, model.Entry{}, err
	}
	rate, err := parseOpt(colRate, "rate")
	if err != nil {
		return model.Line{}, model.Entry{}, err
	}
	baseDebit, err := parseOpt(colBaseDr, "base_debit")
	if err != nil {
		return model.Line{}, model.Entry{}, err
	}
	baseCredit, err := parseOpt(colBaseCr, "base_credit")
	if err != nil {
		return model.Line{}, model.Entry{}, err
	}

	line := model.Line{
		EntryID:     record[colLineID],
		AccountCode: record[colAcct],
		Description: record[colLineDesc],
		Debit:       debit,
		Credit:      credit,
		Currency:    record[colCurrency],
		Rate:        rate,
		BaseDebit:   baseDebit,
		BaseCredit:  baseCredit,
	}
	entry := model.Entry{
		Date:        date,
		Reference:   record[colRef],
		Description: record[colDesc],
		Status:      model.StatusPosted,
	}
	return line, entry, nil
}
