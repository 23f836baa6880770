package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/ports"
)

// RecordDriverLocationCommandHandler handles location reports: the sample is
// appended, the driver's samples older than the retention window are pruned
// in the same transaction, and the spatial index is refreshed.
type RecordDriverLocationCommandHandler struct {
	uowFactory TrackUoWFactory
	index      ports.DriverIndex
	retention  time.Duration
}

// NewRecordDriverLocationCommandHandler creates a handler for location
// reports. retention bounds how long samples are kept.
func NewRecordDriverLocationCommandHandler(
	uowFactory TrackUoWFactory,
	index ports.DriverIndex,
	retention time.Duration,
) RecordDriverLocationCommandHandler {
	return RecordDriverLocationCommandHandler{
		uowFactory: uowFactory,
		index:      index,
		retention:  retention,
	}
}

// Handle processes the location report command.
func (h RecordDriverLocationCommandHandler) Handle(ctx context.Context, cmd RecordDriverLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	sample, err := tracking.NewSample(cmd.DriverID(), cmd.Point(),
		cmd.Altitude(), cmd.Accuracy(), cmd.Speed(), cmd.Heading())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trackRepo := uow.TrackRepository()

	if err = trackRepo.Add(ctx, sample); err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-h.retention)
	if _, err = trackRepo.PruneDriverOlderThan(ctx, cmd.DriverID(), cutoff); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Best-effort: a stale index entry only widens the shortlist, and the
	// freshness check at query time filters it out.
	_ = h.index.Upsert(ctx, cmd.DriverID(), cmd.Point())

	return nil
}
