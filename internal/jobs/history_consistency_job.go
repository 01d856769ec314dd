package jobs

import (
	"context"
	"log/slog"
	"time"

	"brokerage/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultHistorySchedule runs the check every fifteen minutes.
const DefaultHistorySchedule = "0 */15 * * * *"

type historyVerifier interface {
	Handle(ctx context.Context, query queries.VerifyHistoryQuery) (queries.VerifyHistoryQueryResponse, error)
}

// DriftGauge receives the number of drifted requests found by the last run.
type DriftGauge interface {
	SetHistoryDrifts(n int)
}

// HistoryConsistencyJob periodically replays the status history of every
// request and reports those whose stored status disagrees with it.
type HistoryConsistencyJob struct {
	verifier historyVerifier
	gauge    DriftGauge
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewHistoryConsistencyJob uses DefaultHistorySchedule when schedule is empty.
// gauge may be nil.
func NewHistoryConsistencyJob(
	verifier historyVerifier,
	gauge DriftGauge,
	schedule string,
	logger *slog.Logger,
) *HistoryConsistencyJob {
	if schedule == "" {
		schedule = DefaultHistorySchedule
	}
	return &HistoryConsistencyJob{
		verifier: verifier,
		gauge:    gauge,
		schedule: schedule,
		timeout:  5 * time.Minute,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "history_consistency_job"),
	}
}

// Start schedules the check. An invalid cron expression is returned as is.
func (j *HistoryConsistencyJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("History consistency job started", "schedule", j.schedule)
	return nil
}

// Run performs one check and returns the drifted requests.
func (j *HistoryConsistencyJob) Run(ctx context.Context) []queries.HistoryDrift {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	resp, err := j.verifier.Handle(ctx, queries.NewVerifyHistoryQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "History consistency check failed", "checked", resp.Checked, "error", err)
		return nil
	}
	if j.gauge != nil {
		j.gauge.SetHistoryDrifts(len(resp.Drifts))
	}

	for _, d := range resp.Drifts {
		j.logger.WarnContext(ctx, "Status history drift", "request_id", d.RequestID, "reason", d.Reason)
	}
	j.logger.InfoContext(ctx, "History consistency check finished", "checked", resp.Checked, "drifts", len(resp.Drifts))
	return resp.Drifts
}

// Stop waits for a running check to finish.
func (j *HistoryConsistencyJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("History consistency job stopped")
}
