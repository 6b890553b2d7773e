package ledger

import (
	"time"

	"github.com/google/uuid"
)

// EntryStatus enumerates journal entry lifecycle values. DRAFT is the only
// mutable state; POSTED is terminal.
type EntryStatus string

const (
	EntryStatusDraft  EntryStatus = "DRAFT"
	EntryStatusPosted EntryStatus = "POSTED"
)

// BalanceTolerance is the maximum accepted |sum(debit) - sum(credit)| for a
// posted entry, in currency units.
const BalanceTolerance = 0.01

// JournalEntry is one double-entry transaction.
type JournalEntry struct {
	ID           int64
	Number       int64
	Date         time.Time
	Description  string
	Status       EntryStatus
	IsAutomatic  bool
	TemplateCode *string
	TriggerType  *string
	SourceModule *string
	SourceID     *uuid.UUID
	PostedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Lines        []JournalLine
}

// JournalLine is one row of a journal entry. Debit and credit are independent
// non-negative amounts; balance is enforced at the entry level only.
type JournalLine struct {
	ID          int64
	EntryID     int64
	AccountID   int64
	AccountCode string
	Debit       float64
	Credit      float64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Totals sums debit and credit across the entry's lines.
func (e JournalEntry) Totals() (debit, credit float64) {
	for _, line := range e.Lines {
		debit += line.Debit
		credit += line.Credit
	}
	return debit, credit
}
