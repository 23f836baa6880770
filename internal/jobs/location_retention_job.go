package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/commands"
)

// LocationRetentionJob sweeps location samples older than the retention
// window. The per-driver prune attached to each location report keeps active
// drivers' trails bounded; this job catches the trails of drivers who
// stopped reporting.
type LocationRetentionJob struct {
	handler   commands.PruneLocationHistoryCommandHandler
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewLocationRetentionJob creates a job that sweeps old location samples
// every ten minutes.
func NewLocationRetentionJob(
	handler commands.PruneLocationHistoryCommandHandler,
	retention time.Duration,
	logger *slog.Logger,
) *LocationRetentionJob {
	return &LocationRetentionJob{
		handler:   handler,
		retention: retention,
		cron:      cron.New(),
		logger:    logger.With("component", "location_retention_job"),
	}
}

// Start schedules the sweep.
func (j *LocationRetentionJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewPruneLocationHistoryCommand(j.retention)
		if err != nil {
			j.logger.ErrorContext(ctx, "Location retention sweep misconfigured", "error", err)
			return
		}

		deleted, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Location retention sweep failed", "error", err)
			return
		}
		if deleted > 0 {
			j.logger.InfoContext(ctx, "Location retention sweep completed", "deleted", deleted)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location retention job started (running every ten minutes)",
		"retention", j.retention)
	return nil
}

// Stop stops the sweep.
func (j *LocationRetentionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Location retention job stopped")
}
