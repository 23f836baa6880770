package commands

import (
	"context"
	"time"
)

// PruneLocationHistoryCommandHandler handles the retention sweep.
type PruneLocationHistoryCommandHandler struct {
	uowFactory TrackUoWFactory
}

// NewPruneLocationHistoryCommandHandler creates a handler for retention
// sweeps.
func NewPruneLocationHistoryCommandHandler(uowFactory TrackUoWFactory) PruneLocationHistoryCommandHandler {
	return PruneLocationHistoryCommandHandler{uowFactory: uowFactory}
}

// Handle deletes all samples older than the retention window and returns
// how many were removed.
func (h PruneLocationHistoryCommandHandler) Handle(
	ctx context.Context,
	cmd PruneLocationHistoryCommand,
) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-cmd.Retention())
	deleted, err := uow.TrackRepository().PruneOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
