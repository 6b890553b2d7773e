package ledger

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ledgerline/ledgerline/internal/shared"
)

// AuditPort records ledger events for compliance.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Invalidator is notified whenever posted balances change, so derived views
// can drop their caches.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service owns the entry lifecycle and enforces the double-entry invariant at
// the point it matters: posting. Composition (DRAFT) is permissive so a draft
// can be edited toward balance before being locked in.
type Service struct {
	repo        Repository
	audit       AuditPort
	invalidator Invalidator
	now         func() time.Time
}

// NewService constructs the ledger service.
func NewService(repo Repository, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// WithInvalidator attaches a cache invalidation hook fired after postings.
func (s *Service) WithInvalidator(inv Invalidator) {
	s.invalidator = inv
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	_ = s.invalidator.Invalidate(ctx)
}

// CreateEntry validates account eligibility, allocates the next entry number,
// and persists header plus lines atomically. Entries created directly in
// POSTED status pass the same balance check confirmation applies.
func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput) (JournalEntry, error) {
	if err := input.Validate(); err != nil {
		return JournalEntry{}, err
	}
	var entry JournalEntry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := s.checkPostable(ctx, tx, input.Lines); err != nil {
			return err
		}
		inserted, err := tx.InsertEntry(ctx, input)
		if err != nil {
			return err
		}
		if err := tx.InsertLines(ctx, inserted.ID, input.Lines); err != nil {
			return err
		}
		if input.SourceID != nil && input.SourceModule != nil {
			if err := tx.LinkSource(ctx, *input.SourceModule, *input.SourceID, inserted.ID); err != nil {
				return err
			}
		}
		inserted.Lines = toJournalLines(inserted.ID, input.Lines, s.now())
		entry = inserted
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	s.record(ctx, "journal.create", entry, map[string]any{
		"number": entry.Number,
		"status": string(entry.Status),
	})
	if entry.Status == EntryStatusPosted {
		s.invalidate(ctx)
	}
	return entry, nil
}

// ConfirmEntry transitions a balanced DRAFT to POSTED. On imbalance the entry
// is left unchanged in DRAFT and the numeric difference is reported.
func (s *Service) ConfirmEntry(ctx context.Context, entryID int64) (JournalEntry, error) {
	var entry JournalEntry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetEntryWithLinesForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if current.Status == EntryStatusPosted {
			return fmt.Errorf("%w: entry %d", ErrAlreadyFinalized, current.Number)
		}
		debit, credit := current.Totals()
		if diff := math.Abs(debit - credit); diff > BalanceTolerance {
			return fmt.Errorf("%w: difference %.2f", ErrUnbalanced, diff)
		}
		postedAt := s.now()
		if err := tx.MarkPosted(ctx, current.ID, postedAt); err != nil {
			return err
		}
		current.Status = EntryStatusPosted
		current.PostedAt = &postedAt
		entry = current
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	s.record(ctx, "journal.confirm", entry, map[string]any{"number": entry.Number})
	s.invalidate(ctx)
	return entry, nil
}

// ListEntries returns entries matching the filter with pagination metadata.
func (s *Service) ListEntries(ctx context.Context, filter EntryFilter) ([]JournalEntry, shared.Pagination, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return entries, shared.NewPagination(filter.Page, filter.PerPage, total), nil
}

// GetEntry loads one entry with its lines.
func (s *Service) GetEntry(ctx context.Context, entryID int64) (JournalEntry, error) {
	return s.repo.GetEntry(ctx, entryID)
}

// checkPostable rejects lines referencing missing, non-detail, or inactive
// accounts, naming every offending account.
func (s *Service) checkPostable(ctx context.Context, tx TxRepository, lines []LineInput) error {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}
	accounts, err := tx.FetchPostingAccounts(ctx, ids)
	if err != nil {
		return err
	}
	var offending []string
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			offending = append(offending, fmt.Sprintf("#%d", id))
			continue
		}
		if !account.AcceptsEntries || !account.IsActive {
			offending = append(offending, account.Code)
		}
	}
	if len(offending) > 0 {
		sort.Strings(offending)
		return fmt.Errorf("%w: %s", ErrAccountNotPostable, strings.Join(offending, ", "))
	}
	return nil
}

func toJournalLines(entryID int64, lines []LineInput, ts time.Time) []JournalLine {
	out := make([]JournalLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, JournalLine{
			EntryID:     entryID,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		})
	}
	return out
}

func (s *Service) record(ctx context.Context, action string, entry JournalEntry, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Action:   action,
		Entity:   "journal_entry",
		EntityID: fmt.Sprintf("%d", entry.ID),
		Meta:     meta,
		At:       s.now(),
	})
}
