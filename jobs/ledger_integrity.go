package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/hibiken/asynq"

	"github.com/ledgerline/ledgerline/internal/ledger"
	"github.com/ledgerline/ledgerline/internal/reports"
)

// NewLedgerIntegrityHandler builds the handler verifying that the posted
// journal still balances in aggregate. A mismatch here means corrupted data,
// so it is reported loudly and the task fails.
func NewLedgerIntegrityHandler(repo reports.Repository, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		activity, err := repo.AccountActivity(ctx, reports.Period{})
		if err != nil {
			return err
		}
		var debit, credit float64
		for _, acc := range activity {
			debit += acc.Debit
			credit += acc.Credit
		}
		if diff := math.Abs(debit - credit); diff > ledger.BalanceTolerance {
			logger.Error("posted journal out of balance",
				slog.Float64("debit", debit),
				slog.Float64("credit", credit),
				slog.Float64("difference", diff),
			)
			return fmt.Errorf("jobs: ledger integrity: difference %.2f", diff)
		}
		logger.Info("ledger integrity verified",
			slog.Float64("debit", debit),
			slog.Float64("credit", credit),
		)
		return nil
	}
}
