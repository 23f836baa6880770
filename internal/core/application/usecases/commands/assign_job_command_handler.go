package commands

import (
	"context"
)

// AssignJobCommandHandler orchestrates the job assignment workflow.
//
// The driver claim and the job mutation happen inside one transaction, and
// the claim itself is a conditional single-row update (available → busy,
// verified by affected-row count). Of N concurrent assignment attempts for
// the same driver, exactly one commits; the rest observe ResourceConflict
// no matter how their reads interleaved.
type AssignJobCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignJobCommandHandler creates a handler for job assignment operations.
// Requires a UoWFactory coordinating the job and driver repositories.
func NewAssignJobCommandHandler(uowFactory UoWFactory) AssignJobCommandHandler {
	return AssignJobCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the job assignment command. The job must be pending and
// the driver available; assignment appends the assigned event to the job's
// history in the same transaction.
func (h AssignJobCommandHandler) Handle(ctx context.Context, cmd AssignJobCommand) error {
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
	driverRepo := uow.DriverRepository()

	aggregate, err := jobRepo.Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	// Claim first: the conditional update either moves the driver
	// available → busy or fails with NotFound/ResourceConflict, so an
	// unassignable driver is detected before the job is touched.
	if err = driverRepo.ClaimForAssignment(ctx, cmd.DriverID()); err != nil {
		return err
	}

	if err = aggregate.Assign(cmd.DriverID(), cmd.Actor()); err != nil {
		return err
	}

	if err = jobRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
