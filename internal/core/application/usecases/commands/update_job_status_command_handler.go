package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/pkg/errs"
)

// UpdateJobStatusCommandHandler handles job status transitions.
//
// A successful transition persists the job and its new status event in one
// transaction; delivery additionally releases the driver (busy → available)
// and rolls the completed job into their counters, in that same transaction.
// A refused transition still leaves an audit trail: the attempted status is
// recorded as an event in its own short transaction before the refusal is
// returned to the caller.
type UpdateJobStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateJobStatusCommandHandler creates a handler for status transitions.
func NewUpdateJobStatusCommandHandler(uowFactory UoWFactory) UpdateJobStatusCommandHandler {
	return UpdateJobStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update command.
func (h UpdateJobStatusCommandHandler) Handle(ctx context.Context, cmd UpdateJobStatusCommand) error {
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

	if err = aggregate.UpdateStatus(cmd.Status(), cmd.Actor(), cmd.Location(), cmd.Note()); err != nil {
		if refused := h.recordRefusedAttempt(ctx, cmd, err); refused != nil {
			return errors.Join(err, refused)
		}
		return err
	}

	if aggregate.Status() == job.Delivered {
		if err = h.settleDelivery(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = jobRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// settleDelivery releases the driver and credits the completed job. Runs
// inside the caller's transaction so the release cannot outlive a failed
// job update.
func (h UpdateJobStatusCommandHandler) settleDelivery(ctx context.Context, uow UoW, aggregate *job.Job) error {
	driverID := aggregate.DriverID()
	if driverID == nil {
		return errs.NewValueIsInvalidErrorWithCause("driverId",
			fmt.Errorf("job %s delivered without an assigned driver", aggregate.ID()))
	}

	driverRepo := uow.DriverRepository()
	if err := driverRepo.ReleaseFromAssignment(ctx, *driverID); err != nil {
		return err
	}

	d, err := driverRepo.Get(ctx, *driverID)
	if err != nil {
		return err
	}
	d.RecordCompletedJob(aggregate.Pricing().Total())

	return driverRepo.Update(ctx, d)
}

// recordRefusedAttempt appends the attempted status as an audit event in its
// own transaction. The refusal itself has already rolled the main
// transaction back, so the event must not ride on it.
func (h UpdateJobStatusCommandHandler) recordRefusedAttempt(
	ctx context.Context,
	cmd UpdateJobStatusCommand,
	cause error,
) error {
	event, err := job.NewStatusEvent(cmd.JobID(), cmd.Status(), cmd.Actor(), cmd.Location(),
		fmt.Sprintf("refused: %s", cause))
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

	if err = uow.JobRepository().AppendEvent(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
