package jobs

import "github.com/hibiken/asynq"

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerIntegrity re-verifies that posted debits equal posted credits.
	TaskLedgerIntegrity = "ledger:integrity"
	// TaskReportWarmup precomputes the common report views into the cache.
	TaskReportWarmup = "reports:warmup"
)

// NewLedgerIntegrityTask constructs the nightly integrity task.
func NewLedgerIntegrityTask() *asynq.Task {
	return asynq.NewTask(TaskLedgerIntegrity, nil)
}

// NewReportWarmupTask constructs the report warmup task.
func NewReportWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskReportWarmup, nil)
}
