package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ledgerline/ledgerline/internal/coa"
)

// AccountDirectory resolves account codes for the general ledger report.
type AccountDirectory interface {
	GetAccountByCode(ctx context.Context, code string) (coa.Account, error)
}

// Service computes financial reports from posted journal activity. Report
// output is cached as a rendered value; the aggregation itself never persists
// anything and always reads the journal fresh on a cache miss.
type Service struct {
	repo      Repository
	directory AccountDirectory
	cache     *Cache
	group     singleflight.Group
	warmup    func(context.Context) error
}

// NewService constructs the reports service.
func NewService(repo Repository, directory AccountDirectory, cache *Cache) *Service {
	return &Service{repo: repo, directory: directory, cache: cache}
}

// WithWarmup registers a hook fired after each invalidation, typically an
// enqueue of the warmup background task so the cache is rebuilt off the
// request path. Best effort; enqueue failures do not fail the posting.
func (s *Service) WithWarmup(fn func(context.Context) error) {
	s.warmup = fn
}

func (s *Service) build(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	cacheKey, err := s.cache.BuildKey(ctx, key)
	if err != nil {
		return err
	}
	resultChan := s.group.DoChan(cacheKey, func() (interface{}, error) {
		var out interface{}
		err := s.cache.FetchJSON(ctx, cacheKey, &out, loader)
		return out, err
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return res.Err
		}
		return remarshal(res.Val, dest)
	}
}

// TrialBalance computes the trial balance over the given window.
func (s *Service) TrialBalance(ctx context.Context, period Period) (TrialBalance, error) {
	var out TrialBalance
	err := s.build(ctx, keyTrialBalance(period), &out, func(ctx context.Context) (interface{}, error) {
		activity, err := s.repo.AccountActivity(ctx, period)
		if err != nil {
			return nil, err
		}
		return BuildTrialBalance(activity), nil
	})
	return out, err
}

// BalanceSheet computes the balance sheet as of the given date. Activity is
// accumulated since inception so the synthetic result row carries every
// undistributed period.
func (s *Service) BalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheet, error) {
	var out BalanceSheet
	err := s.build(ctx, keyBalanceSheet(asOf), &out, func(ctx context.Context) (interface{}, error) {
		activity, err := s.repo.AccountActivity(ctx, Period{To: asOf})
		if err != nil {
			return nil, err
		}
		return BuildBalanceSheet(activity), nil
	})
	return out, err
}

// IncomeStatement computes the income statement over the given window.
func (s *Service) IncomeStatement(ctx context.Context, period Period) (IncomeStatement, error) {
	var out IncomeStatement
	err := s.build(ctx, keyIncomeStatement(period), &out, func(ctx context.Context) (interface{}, error) {
		activity, err := s.repo.AccountActivity(ctx, period)
		if err != nil {
			return nil, err
		}
		return BuildIncomeStatement(activity), nil
	})
	return out, err
}

// GeneralLedger computes the statement of a single account over the window.
func (s *Service) GeneralLedger(ctx context.Context, code string, period Period) (GeneralLedger, error) {
	account, err := s.directory.GetAccountByCode(ctx, code)
	if err != nil {
		return GeneralLedger{}, err
	}
	var out GeneralLedger
	err = s.build(ctx, keyGeneralLedger(code, period), &out, func(ctx context.Context) (interface{}, error) {
		lines, err := s.repo.AccountLedger(ctx, account.ID, period)
		if err != nil {
			return nil, err
		}
		return BuildGeneralLedger(account.Code, account.Name, string(account.Type), lines), nil
	})
	return out, err
}

// Invalidate bumps the cache version after a posting and schedules a warmup
// when one is registered.
func (s *Service) Invalidate(ctx context.Context) error {
	if err := s.cache.Bump(ctx); err != nil {
		return err
	}
	if s.warmup != nil {
		_ = s.warmup(ctx)
	}
	return nil
}

func remarshal(value interface{}, dest interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("reports: marshal result: %w", err)
	}
	return json.Unmarshal(raw, dest)
}
