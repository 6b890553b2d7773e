package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LineInput describes a journal line for a creation request.
type LineInput struct {
	AccountID   int64   `json:"account_id" validate:"required"`
	Debit       float64 `json:"debit" validate:"gte=0"`
	Credit      float64 `json:"credit" validate:"gte=0"`
	Description string  `json:"description"`
}

// CreateEntryInput groups fields required to create a journal entry. Entries
// created directly in POSTED status must balance; DRAFT entries may be
// transiently unbalanced while composed.
type CreateEntryInput struct {
	Date         time.Time   `json:"date" validate:"required"`
	Description  string      `json:"description"`
	Status       EntryStatus `json:"status" validate:"omitempty,oneof=DRAFT POSTED"`
	IsAutomatic  bool        `json:"is_automatic"`
	TemplateCode *string     `json:"template_code"`
	TriggerType  *string     `json:"trigger_type"`
	SourceModule *string     `json:"source_module"`
	SourceID     *uuid.UUID  `json:"source_id"`
	Lines        []LineInput `json:"lines" validate:"required,min=2,dive"`
}

// Validate ensures creation input meets minimum criteria. Balance is only
// checked here when the entry is born POSTED.
func (in CreateEntryInput) Validate() error {
	if in.Date.IsZero() {
		return errors.New("ledger: entry date required")
	}
	if len(in.Lines) < 2 {
		return ErrTooFewLines
	}
	for idx, line := range in.Lines {
		if line.AccountID == 0 {
			return fmt.Errorf("ledger: line %d missing account", idx)
		}
		if line.Debit < 0 || line.Credit < 0 {
			return fmt.Errorf("ledger: line %d negative amount", idx)
		}
	}
	switch in.Status {
	case "", EntryStatusDraft:
	case EntryStatusPosted:
		if diff := in.imbalance(); diff > BalanceTolerance {
			return fmt.Errorf("%w: difference %.2f", ErrUnbalanced, diff)
		}
	default:
		return fmt.Errorf("ledger: invalid status %q", in.Status)
	}
	if in.SourceID != nil && (in.SourceModule == nil || *in.SourceModule == "") {
		return errors.New("ledger: source module required when source id set")
	}
	return nil
}

func (in CreateEntryInput) imbalance() float64 {
	var debit, credit float64
	for _, line := range in.Lines {
		debit += line.Debit
		credit += line.Credit
	}
	diff := debit - credit
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// EntryFilter narrows entry listings.
type EntryFilter struct {
	Status  EntryStatus
	From    *time.Time
	To      *time.Time
	Page    int
	PerPage int
}
