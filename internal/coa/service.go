package coa

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ledgerline/ledgerline/internal/shared"
)

// AuditPort records chart changes for compliance.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service maintains the hierarchy and type consistency of postable accounts.
type Service struct {
	repo  Repository
	audit AuditPort
	now   func() time.Time
}

// NewService constructs the chart of accounts service.
func NewService(repo Repository, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// CreateAccount derives level and parent from the code and persists the account.
func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (Account, error) {
	if err := ValidateCode(input.Code); err != nil {
		return Account{}, err
	}
	if !input.Type.Valid() {
		return Account{}, fmt.Errorf("coa: invalid account type %q", input.Type)
	}
	if _, err := s.repo.GetByCode(ctx, input.Code); err == nil {
		return Account{}, ErrDuplicateCode
	} else if !errors.Is(err, ErrAccountNotFound) {
		return Account{}, err
	}

	account := Account{
		Code:           input.Code,
		Name:           input.Name,
		Type:           input.Type,
		Level:          LevelOf(input.Code),
		AcceptsEntries: input.AcceptsEntries,
		IsActive:       true,
	}
	if parentCode := ParentCode(input.Code); parentCode != "" {
		parent, err := s.repo.GetByCode(ctx, parentCode)
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				return Account{}, fmt.Errorf("%w: %s", ErrParentNotFound, parentCode)
			}
			return Account{}, err
		}
		if parent.Type != input.Type {
			return Account{}, fmt.Errorf("%w: parent %s is %s", ErrTypeMismatch, parent.Code, parent.Type)
		}
		account.ParentID = &parent.ID
	}

	created, err := s.repo.Insert(ctx, account)
	if err != nil {
		return Account{}, err
	}
	s.record(ctx, "account.create", created.ID, map[string]any{"code": created.Code})
	return created, nil
}

// UpdateAccount applies a patch. The code is immutable.
func (s *Service) UpdateAccount(ctx context.Context, id int64, patch UpdateAccountInput) (Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if patch.Name != nil {
		account.Name = *patch.Name
	}
	if patch.Type != nil && *patch.Type != account.Type {
		if !patch.Type.Valid() {
			return Account{}, fmt.Errorf("coa: invalid account type %q", *patch.Type)
		}
		if err := s.checkRetypable(ctx, account, *patch.Type); err != nil {
			return Account{}, err
		}
		account.Type = *patch.Type
	}
	if patch.AcceptsEntries != nil {
		account.AcceptsEntries = *patch.AcceptsEntries
	}
	if patch.IsActive != nil {
		account.IsActive = *patch.IsActive
	}
	updated, err := s.repo.Update(ctx, account)
	if err != nil {
		return Account{}, err
	}
	s.record(ctx, "account.update", updated.ID, map[string]any{"code": updated.Code})
	return updated, nil
}

// checkRetypable guards a type change. Children always carry the current
// type, so any child disagrees with the new one; a parent pins the type from
// above; posted movements would flip sign convention across every report.
func (s *Service) checkRetypable(ctx context.Context, account Account, newType AccountType) error {
	if account.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *account.ParentID)
		if err != nil {
			return err
		}
		if parent.Type != newType {
			return fmt.Errorf("%w: %s is %s under parent %s (%s)", ErrTypeMismatch, account.Code, newType, parent.Code, parent.Type)
		}
	}
	hasChildren, err := s.repo.HasChildren(ctx, account.ID)
	if err != nil {
		return err
	}
	if hasChildren {
		return fmt.Errorf("%w: %s has children typed %s", ErrTypeMismatch, account.Code, account.Type)
	}
	hasMovements, err := s.repo.HasMovements(ctx, account.ID)
	if err != nil {
		return err
	}
	if hasMovements {
		return fmt.Errorf("%w: %s cannot change type", ErrHasMovements, account.Code)
	}
	return nil
}

// DeleteAccount removes an account that has no children and no movements.
func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	hasChildren, err := s.repo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return fmt.Errorf("%w: %s", ErrHasChildren, account.Code)
	}
	hasMovements, err := s.repo.HasMovements(ctx, id)
	if err != nil {
		return err
	}
	if hasMovements {
		return fmt.Errorf("%w: %s", ErrHasMovements, account.Code)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "account.delete", id, map[string]any{"code": account.Code})
	return nil
}

// BulkInitialize seeds an empty chart, inserting parents before children.
// Created IDs are tracked in-memory so children resolve parents without
// re-querying.
func (s *Service) BulkInitialize(ctx context.Context, definitions []AccountDefinition) ([]Account, error) {
	if len(definitions) == 0 {
		return nil, errors.New("coa: no account definitions supplied")
	}
	typeByCode := make(map[string]AccountType, len(definitions))
	for _, def := range definitions {
		if err := ValidateCode(def.Code); err != nil {
			return nil, err
		}
		if !def.Type.Valid() {
			return nil, fmt.Errorf("coa: invalid account type %q for %s", def.Type, def.Code)
		}
		if _, dup := typeByCode[def.Code]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, def.Code)
		}
		typeByCode[def.Code] = def.Type
	}

	ordered := append([]AccountDefinition(nil), definitions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		li, lj := LevelOf(ordered[i].Code), LevelOf(ordered[j].Code)
		if li != lj {
			return li < lj
		}
		return ordered[i].Code < ordered[j].Code
	})

	var created []Account
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		existing, err := tx.Count(ctx)
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyInitialized
		}
		idsByCode := make(map[string]int64, len(ordered))
		for _, def := range ordered {
			account := Account{
				Code:           def.Code,
				Name:           def.Name,
				Type:           def.Type,
				Level:          LevelOf(def.Code),
				AcceptsEntries: def.AcceptsEntries,
				IsActive:       true,
			}
			if parentCode := ParentCode(def.Code); parentCode != "" {
				parentID, ok := idsByCode[parentCode]
				if !ok {
					return fmt.Errorf("%w: %s", ErrParentNotFound, parentCode)
				}
				if typeByCode[parentCode] != def.Type {
					return fmt.Errorf("%w: %s under %s", ErrTypeMismatch, def.Code, parentCode)
				}
				account.ParentID = &parentID
			}
			inserted, err := tx.Insert(ctx, account)
			if err != nil {
				return err
			}
			idsByCode[inserted.Code] = inserted.ID
			created = append(created, inserted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.record(ctx, "account.bulk_init", 0, map[string]any{"count": len(created)})
	return created, nil
}

// ListAccounts returns accounts matching the filter with pagination metadata.
func (s *Service) ListAccounts(ctx context.Context, filter ListFilter) ([]Account, shared.Pagination, error) {
	accounts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return accounts, shared.NewPagination(filter.Page, filter.PerPage, total), nil
}

// GetAccountByCode resolves one account by its code.
func (s *Service) GetAccountByCode(ctx context.Context, code string) (Account, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) record(ctx context.Context, action string, id int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Action:   action,
		Entity:   "account",
		EntityID: fmt.Sprintf("%d", id),
		Meta:     meta,
		At:       s.now(),
	})
}
