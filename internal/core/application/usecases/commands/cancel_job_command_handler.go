package commands

import (
	"context"
)

// CancelJobCommandHandler handles job cancellation. Cancelling a job that
// currently occupies a driver releases them (busy → available) in the same
// transaction as the job mutation.
type CancelJobCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelJobCommandHandler creates a handler for cancellation operations.
func NewCancelJobCommandHandler(uowFactory UoWFactory) CancelJobCommandHandler {
	return CancelJobCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command. The aggregate enforces the role
// and terminal-status rules; this handler owns the driver release.
func (h CancelJobCommandHandler) Handle(ctx context.Context, cmd CancelJobCommand) error {
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

	jobRepo := uow.JobRepository()

	aggregate, err := jobRepo.Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	if err = aggregate.Cancel(cmd.Actor(), cmd.Note()); err != nil {
		return err
	}

	// Cancel only succeeds on non-terminal statuses, and a driver attached to
	// a non-terminal job is busy with it regardless of the exact status
	// (arrived, held, ...), so an attached driver always needs releasing here.
	if aggregate.DriverID() != nil {
		if err = uow.DriverRepository().ReleaseFromAssignment(ctx, *aggregate.DriverID()); err != nil {
			return err
		}
	}

	if err = jobRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
