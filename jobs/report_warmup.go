package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/ledgerline/ledgerline/internal/reports"
)

// NewReportWarmupHandler builds the handler that precomputes the heavy
// report views so the first request after an invalidation hits the cache.
func NewReportWarmupHandler(service *reports.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		now := time.Now().UTC()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			_, err := service.TrialBalance(gctx, reports.Period{To: now})
			return err
		})
		g.Go(func() error {
			_, err := service.BalanceSheet(gctx, now)
			return err
		})
		g.Go(func() error {
			_, err := service.IncomeStatement(gctx, reports.Period{From: monthStart, To: now})
			return err
		})
		if err := g.Wait(); err != nil {
			logger.Warn("report warmup incomplete", slog.Any("error", err))
			return err
		}
		logger.Info("report cache warmed")
		return nil
	}
}
