package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignJobCommandIsNotConstructed = errors.New(
	"AssignJobCommand must be created via NewAssignJobCommand constructor",
)

// AssignJobCommand represents a request to assign a pending job to a driver.
type AssignJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	driverID kernel.UUID
	actor    job.Actor

	guard guard.ConstructorGuard
}

// NewAssignJobCommand creates a command to assign a job to a driver.
func NewAssignJobCommand(jobID kernel.UUID, driverID kernel.UUID, actor job.Actor) (AssignJobCommand, error) {
	cmd := AssignJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		jobID.Validate(),
		driverID.Validate(),
		actor.ID.Validate(),
		actor.Role.Validate(),
	); err != nil {
		return AssignJobCommand{}, err
	}

	cmd.jobID = jobID
	cmd.driverID = driverID
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignJobCommand) Validate() error {
	return c.guard.Validate(ErrAssignJobCommandIsNotConstructed)
}

// JobID returns the job to assign.
func (c AssignJobCommand) JobID() kernel.UUID { return c.jobID }

// DriverID returns the driver to claim.
func (c AssignJobCommand) DriverID() kernel.UUID { return c.driverID }

// Actor returns who requested the assignment.
func (c AssignJobCommand) Actor() job.Actor { return c.actor }
