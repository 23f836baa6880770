package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	locationRetentionJob *LocationRetentionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	pruneHandler commands.PruneLocationHistoryCommandHandler,
	retention time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		locationRetentionJob: NewLocationRetentionJob(pruneHandler, retention, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.locationRetentionJob.Start(); err != nil {
		return fmt.Errorf("failed to start location retention job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.locationRetentionJob.Stop()
}
