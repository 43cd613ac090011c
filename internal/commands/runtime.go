package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/accounts"
	"github.com/ledgerline-dev/ledgerline/internal/auditlog"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/gitops"
	"github.com/ledgerline-dev/ledgerline/internal/journal"
	"github.com/ledgerline-dev/ledgerline/internal/money"
)

// runtime bundles the services every books-touching command needs.
type runtime struct {
	booksRoot string
	cfg       *config.Config
	accounts  *accounts.Index
	journal   *journal.Service
	base      money.Currency
}

// loadRuntime opens an existing books directory.
func loadRuntime(booksDir string) (*runtime, error) {
	booksRoot, err := filepath.Abs(booksDir)
	if err != nil {
		return nil, fmt.Errorf("resolving books dir: %w", err)
	}

	cfg, err := config.Load(filepath.Join(booksRoot, "ledgerline.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	index, err := accounts.Load(booksRoot)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	base := money.Resolve(cfg.Currency.Base, cfg.Currency.MinorUnits)
	poster := &journal.Poster{Accounts: index, Base: base}

	return &runtime{
		booksRoot: booksRoot,
		cfg:       cfg,
		accounts:  index,
		journal:   journal.NewService(booksRoot, poster),
		base:      base,
	}, nil
}

// recordAction logs a mutating operation and, when auto-commit is enabled,
// commits the books directory.
func (rt *runtime) recordAction(actor, action, details, entryID string) error {
	commitHash := ""
	if rt.cfg.Git.AutoCommit && gitops.IsRepo(rt.booksRoot) {
		message := fmt.Sprintf("%s: %s %s", action, entryID, details)
		hash, err := gitops.CommitBooks(rt.booksRoot, message, rt.cfg.Git.AuthorName, rt.cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("committing books: %w", err)
		}
		commitHash = hash
	}

	return auditlog.Append(rt.booksRoot, []auditlog.Entry{{
		Timestamp:  time.Now().UTC(),
		Actor:      actor,
		Action:     action,
		Details:    details,
		EntryID:    entryID,
		CommitHash: commitHash,
	}})
}

const flagDateFormat = "2006-01-02"

func parseDateFlag(value, name string) (time.Time, error) {
	d, err := time.Parse(flagDateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (want YYYY-MM-DD)", name, value)
	}
	return d, nil
}
