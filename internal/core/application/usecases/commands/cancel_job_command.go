package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelJobCommandIsNotConstructed = errors.New(
	"CancelJobCommand must be created via NewCancelJobCommand constructor",
)

// CancelJobCommand represents a request to cancel a job. Cancellation is the
// terminal escape for non-terminal jobs; only privileged roles may request it.
type CancelJobCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID
	actor job.Actor
	note  string

	guard guard.ConstructorGuard
}

// NewCancelJobCommand creates a command to cancel a job.
func NewCancelJobCommand(jobID kernel.UUID, actor job.Actor, note string) (CancelJobCommand, error) {
	cmd := CancelJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		jobID.Validate(),
		actor.ID.Validate(),
		actor.Role.Validate(),
	); err != nil {
		return CancelJobCommand{}, err
	}

	cmd.jobID = jobID
	cmd.actor = actor
	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelJobCommand) Validate() error {
	return c.guard.Validate(ErrCancelJobCommandIsNotConstructed)
}

// JobID returns the job to cancel.
func (c CancelJobCommand) JobID() kernel.UUID { return c.jobID }

// Actor returns who requested the cancellation.
func (c CancelJobCommand) Actor() job.Actor { return c.actor }

// Note returns the cancellation reason.
func (c CancelJobCommand) Note() string { return c.note }
