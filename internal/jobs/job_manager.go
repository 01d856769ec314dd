package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	historyJob *HistoryConsistencyJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	verifier historyVerifier,
	gauge DriftGauge,
	historySchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		historyJob: NewHistoryConsistencyJob(verifier, gauge, historySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.historyJob.Start(); err != nil {
		return fmt.Errorf("failed to start history consistency job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.historyJob.Stop()
}
