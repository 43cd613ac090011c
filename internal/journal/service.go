package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Service is the append-only journal store: one journal.csv per month under
// <booksRoot>/YYYY/MM/. Entries are posted through the Poster and written
// once; the store never rewrites existing rows, so insertion order among
// same-day entries is preserved.
type Service struct {
	booksRoot string
	poster    *Poster
}

// NewService creates a journal Service rooted at booksRoot.
func NewService(booksRoot string, poster *Poster) *Service {
	return &Service{booksRoot: booksRoot, poster: poster}
}

// Post validates a draft, assigns the next entry ID for its month, and
// appends the posted entry to the month's journal.csv. The returned entry
// carries its assigned ID and line IDs.
func (s *Service) Post(draft Draft) (model.Entry, error) {
	entry, err := s.poster.Post(draft, time.Now().UTC())
	if err != nil {
		return model.Entry{}, err
	}

	year := entry.Date.Year()
	month := int(entry.Date.Month())

	seq, err := s.NextEntrySeq(year, month)
	if err != nil {
		return model.Entry{}, err
	}

	entry.ID = id.FormatEntryID(year, month, seq)
	for i := range entry.Lines {
		entry.Lines[i].EntryID = id.FormatLineID(entry.ID, i)
	}

	if err := s.append(entry); err != nil {
		return model.Entry{}, err
	}
	return entry, nil
}

// Reverse posts a correcting entry that mirrors every line of the original
// (debits become credits and vice versa) at the given date. The original
// entry is untouched; the reversal references it. This is the only
// correction path: posted entries are never edited in place.
func (s *Service) Reverse(entryID string, date time.Time, reason string) (model.Entry, error) {
	original, ok, err := s.Find(entryID)
	if err != nil {
		return model.Entry{}, err
	}
	if !ok {
		return model.Entry{}, fmt.Errorf("entry %s not found", entryID)
	}

	description := "Reversal of " + original.ID
	if reason != "" {
		description += ": " + reason
	}

	draft := Draft{
		Date:        date,
		Reference:   original.ID,
		Description: description,
	}
	for _, l := range original.Lines {
		draft.Lines = append(draft.Lines, DraftLine{
			AccountCode: l.AccountCode,
			Description: l.Description,
			Debit:       l.Credit,
			Credit:      l.Debit,
			Currency:    l.Currency,
			Rate:        l.Rate,
		})
	}
	return s.Post(draft)
}

// Find locates a posted entry by ID.
func (s *Service) Find(entryID string) (model.Entry, bool, error) {
	year, month, _, err := id.ParseEntryID(entryID)
	if err != nil {
		return model.Entry{}, false, err
	}

	entries, err := s.ReadMonth(year, month)
	if err != nil {
		return model.Entry{}, false, err
	}
	for _, e := range entries {
		if e.ID == entryID {
			return e, true, nil
		}
	}
	return model.Entry{}, false, nil
}

// ReadMonth reads all entries for a given year/month. A missing month file
// means no entries.
func (s *Service) ReadMonth(year, month int) ([]model.Entry, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return entries, nil
}

// ReadAll reads every posted entry in the books, oldest month first. Within
// a month, file order (insertion order) is preserved.
func (s *Service) ReadAll() ([]model.Entry, error) {
	pattern := filepath.Join(s.booksRoot, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "journal.csv")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}
	sort.Strings(paths) // YYYY/MM sorts chronologically

	var all []model.Entry
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening journal %s: %w", path, err)
		}
		entries, err := ReadEntries(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading journal %s: %w", path, err)
		}
		all = append(all, entries...)
	}
	return all, nil
}

// ReadPeriod reads all posted entries whose date falls within [start, end],
// inclusive.
func (s *Service) ReadPeriod(start, end time.Time) ([]model.Entry, error) {
	all, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	var filtered []model.Entry
	for _, e := range all {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

// NextEntrySeq returns the next available sequence number for a month.
func (s *Service) NextEntrySeq(year, month int) (int, error) {
	entries, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, e := range entries {
		_, _, seq, err := id.ParseEntryID(e.ID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

func (s *Service) append(entry model.Entry) error {
	path := s.monthPath(entry.Date.Year(), int(entry.Date.Month()))
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendEntry(f, entry); err != nil {
		return fmt.Errorf("appending entry: %w", err)
	}
	return nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.booksRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}
