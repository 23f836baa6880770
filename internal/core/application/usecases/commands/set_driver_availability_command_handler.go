package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// SetDriverAvailabilityCommandHandler handles duty state changes.
//
// The availability read, the active-job count and the write all touch
// mutable rows, so the write is a compare-and-set against the availability
// that was read: if an assignment slipped in between, the stored value no
// longer matches and the change is refused with ResourceConflict instead of
// silently stomping the busy state.
type SetDriverAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	index      ports.DriverIndex
}

// NewSetDriverAvailabilityCommandHandler creates a handler for availability
// changes. The index is updated to drop drivers that leave duty.
func NewSetDriverAvailabilityCommandHandler(uowFactory UoWFactory, index ports.DriverIndex) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{
		uowFactory: uowFactory,
		index:      index,
	}
}

// Handle processes the availability change command.
func (h SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetDriverAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	aggregate, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}
	observed := aggregate.Availability()

	activeJobs, err := uow.JobRepository().CountActiveByDriver(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	// Domain check against the observed state.
	if err = aggregate.SetAvailability(cmd.Target(), activeJobs); err != nil {
		return err
	}

	// Conditional write against that same observed state.
	if err = driverRepo.CompareAndSetAvailability(ctx, cmd.DriverID(), observed, cmd.Target()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Off-duty drivers drop out of proximity shortlists. Index maintenance
	// is best-effort; the availability check at query time is authoritative.
	if cmd.Target() != observed && !cmd.Target().IsOnDuty() {
		_ = h.index.Remove(ctx, cmd.DriverID())
	}

	return nil
}
