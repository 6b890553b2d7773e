package posting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/coa"
	"github.com/ledgerline/ledgerline/internal/ledger"
)

// Ledger exposes the journal creation operation templates post through.
type Ledger interface {
	CreateEntry(ctx context.Context, input ledger.CreateEntryInput) (ledger.JournalEntry, error)
}

// AccountDirectory resolves account codes against the chart of accounts.
type AccountDirectory interface {
	GetAccountByCode(ctx context.Context, code string) (coa.Account, error)
}

// Service translates business events into balanced journal entries through
// declarative templates, keeping accounting knowledge out of the call sites.
type Service struct {
	repo      Repository
	directory AccountDirectory
	ledger    Ledger
	logger    *slog.Logger
}

// NewService constructs the template service.
func NewService(repo Repository, directory AccountDirectory, ledger Ledger, logger *slog.Logger) *Service {
	return &Service{repo: repo, directory: directory, ledger: ledger, logger: logger}
}

// ListTemplates returns all registered templates.
func (s *Service) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.repo.List(ctx)
}

// GetTemplate loads an active template by code.
func (s *Service) GetTemplate(ctx context.Context, code string) (Template, error) {
	tpl, err := s.repo.Get(ctx, code)
	if err != nil {
		return Template{}, err
	}
	if !tpl.IsActive {
		return Template{}, fmt.Errorf("%w: %s is inactive", ErrTemplateNotFound, code)
	}
	return tpl, nil
}

// ValidateTemplate checks that the template's lines, populated with a
// representative amount, produce equal debit and credit totals. A sanity
// operation, not part of the posting hot path.
func (s *Service) ValidateTemplate(ctx context.Context, code string) (ValidationResult, error) {
	tpl, err := s.repo.Get(ctx, code)
	if err != nil {
		return ValidationResult{}, err
	}
	amounts, err := computeAmounts(tpl, decimal.NewFromInt(100))
	if err != nil {
		return ValidationResult{Code: code, Balanced: false}, nil
	}
	var debit, credit decimal.Decimal
	for i, line := range tpl.Lines {
		if line.Side == SideDebit {
			debit = debit.Add(amounts[i])
		} else {
			credit = credit.Add(amounts[i])
		}
	}
	d, _ := debit.Float64()
	c, _ := credit.Float64()
	return ValidationResult{Code: code, Balanced: debit.Equal(credit), Debit: d, Credit: c}, nil
}

// ApplyTemplate resolves the template's account references against the chart
// and the context's hints, computes each line's amount, and posts the
// resulting entry. The output is re-checked for balance before posting; a
// failure there is a template configuration bug, not a data problem.
func (s *Service) ApplyTemplate(ctx context.Context, code string, trigger Context) (ledger.JournalEntry, error) {
	tpl, err := s.GetTemplate(ctx, code)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	if trigger.Amount <= 0 {
		return ledger.JournalEntry{}, fmt.Errorf("posting: trigger amount must be positive")
	}

	amounts, err := computeAmounts(tpl, decimal.NewFromFloat(trigger.Amount))
	if err != nil {
		s.logger.Error("template output does not balance",
			slog.String("template", tpl.Code),
			slog.Any("error", err),
		)
		return ledger.JournalEntry{}, err
	}

	lines := make([]ledger.LineInput, 0, len(tpl.Lines))
	for i, line := range tpl.Lines {
		accountID, err := s.resolveRef(ctx, line.Ref, trigger)
		if err != nil {
			return ledger.JournalEntry{}, err
		}
		amount, _ := amounts[i].Float64()
		input := ledger.LineInput{AccountID: accountID, Description: line.Description}
		if line.Side == SideDebit {
			input.Debit = amount
		} else {
			input.Credit = amount
		}
		lines = append(lines, input)
	}

	memo := trigger.Memo
	if memo == "" {
		memo = tpl.Description
	}
	entryInput := ledger.CreateEntryInput{
		Date:         trigger.Date,
		Description:  memo,
		Status:       ledger.EntryStatusPosted,
		IsAutomatic:  true,
		TemplateCode: &tpl.Code,
		TriggerType:  &tpl.TriggerType,
		Lines:        lines,
	}
	if trigger.SourceModule != "" {
		entryInput.SourceModule = &trigger.SourceModule
		sourceID := trigger.SourceID
		entryInput.SourceID = &sourceID
	}
	return s.ledger.CreateEntry(ctx, entryInput)
}

func (s *Service) resolveRef(ctx context.Context, ref AccountRef, trigger Context) (int64, error) {
	code := ref.Code
	if ref.Kind == RefDynamic {
		hint, ok := trigger.AccountHints[ref.ContextKey]
		if !ok || hint == "" {
			return 0, fmt.Errorf("%w: no hint for %q", ErrAccountResolutionFailed, ref.ContextKey)
		}
		code = hint
	}
	account, err := s.directory.GetAccountByCode(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("%w: account %s: %v", ErrAccountResolutionFailed, code, err)
	}
	return account.ID, nil
}

// computeAmounts evaluates each line's amount rule against the base amount,
// rounding to 2 decimal places per line, and verifies the totals balance.
func computeAmounts(tpl Template, base decimal.Decimal) ([]decimal.Decimal, error) {
	amounts := make([]decimal.Decimal, len(tpl.Lines))
	var debit, credit decimal.Decimal
	for i, line := range tpl.Lines {
		var amount decimal.Decimal
		switch line.Rule.Kind {
		case RuleFull:
			amount = base.Round(2)
		case RuleProportion:
			amount = base.Mul(line.Rule.Ratio).Round(2)
		case RuleBalance:
			if i != len(tpl.Lines)-1 {
				return nil, fmt.Errorf("%w: %s balance line must be last", ErrUnbalancedTemplateOutput, tpl.Code)
			}
			if line.Side == SideDebit {
				amount = credit.Sub(debit)
			} else {
				amount = debit.Sub(credit)
			}
			if amount.IsNegative() {
				return nil, fmt.Errorf("%w: %s", ErrUnbalancedTemplateOutput, tpl.Code)
			}
		default:
			return nil, fmt.Errorf("posting: template %s line %d has unknown rule %q", tpl.Code, i, line.Rule.Kind)
		}
		amounts[i] = amount
		if line.Side == SideDebit {
			debit = debit.Add(amount)
		} else {
			credit = credit.Add(amount)
		}
	}
	if !debit.Equal(credit) {
		return nil, fmt.Errorf("%w: %s differs by %s", ErrUnbalancedTemplateOutput, tpl.Code, debit.Sub(credit).Abs())
	}
	return amounts, nil
}
