// Package importer turns bank CSV exports into journal drafts. Parsed
// transactions never reach the journal directly: every draft goes through
// the poster so imported entries obey the same invariants as manual ones.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerline-dev/ledgerline/internal/journal"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Parser converts a bank CSV file into BankTransactions.
type Parser interface {
	Parse(r io.Reader) ([]model.BankTransaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&GenericParser{})
	return r
}

// Accounts names the chart accounts an import posts against.
type Accounts struct {
	Bank    string // the imported feed's asset account
	Income  string // credited for money in
	Expense string // debited for money out
}

// Drafts converts parsed transactions into balanced two-line drafts: money
// in debits the bank account against income, money out credits it against
// expense. Zero-amount rows are skipped.
func Drafts(txns []model.BankTransaction, accounts Accounts) []journal.Draft {
	var drafts []journal.Draft
	for _, txn := range txns {
		if txn.Amount.IsZero() {
			continue
		}

		draft := journal.Draft{
			Date:        txn.Date,
			Reference:   txn.Reference,
			Description: txn.Description,
		}
		amount := txn.Amount.Abs()
		if txn.Amount.IsPositive() {
			draft.Lines = []journal.DraftLine{
				{AccountCode: accounts.Bank, Debit: amount},
				{AccountCode: accounts.Income, Credit: amount},
			}
		} else {
			draft.Lines = []journal.DraftLine{
				{AccountCode: accounts.Expense, Debit: amount},
				{AccountCode: accounts.Bank, Credit: amount},
			}
		}
		drafts = append(drafts, draft)
	}
	return drafts
}

// importDir is the subdirectory for import CSVs.
const importDir = "import"

// processedDir is the subdirectory for processed CSVs.
const processedDir = "import/processed"

// Scan returns CSV files in <booksRoot>/import/.
func Scan(booksRoot string) ([]FileInfo, error) {
	dir := filepath.Join(booksRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(booksRoot, fileName string) error {
	src := filepath.Join(booksRoot, importDir, fileName)
	dstDir := filepath.Join(booksRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
