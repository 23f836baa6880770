package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateJobStatusCommandIsNotConstructed = errors.New(
	"UpdateJobStatusCommand must be created via NewUpdateJobStatusCommand constructor",
)

// UpdateJobStatusCommand represents a request to move a job to a new status.
// The optional location and note are recorded on the resulting status event.
type UpdateJobStatusCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	status   job.Status
	actor    job.Actor
	location *kernel.GeoPoint
	note     string

	guard guard.ConstructorGuard
}

// NewUpdateJobStatusCommand creates a command to change a job's status.
func NewUpdateJobStatusCommand(
	jobID kernel.UUID,
	status job.Status,
	actor job.Actor,
	location *kernel.GeoPoint,
	note string,
) (UpdateJobStatusCommand, error) {
	cmd := UpdateJobStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		jobID.Validate(),
		status.Validate(),
		actor.ID.Validate(),
		actor.Role.Validate(),
		validateOptionalPoint(location),
	); err != nil {
		return UpdateJobStatusCommand{}, err
	}

	cmd.jobID = jobID
	cmd.status = status
	cmd.actor = actor
	cmd.location = location
	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateJobStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateJobStatusCommandIsNotConstructed)
}

// JobID returns the job to update.
func (c UpdateJobStatusCommand) JobID() kernel.UUID { return c.jobID }

// Status returns the target status.
func (c UpdateJobStatusCommand) Status() job.Status { return c.status }

// Actor returns who requested the change.
func (c UpdateJobStatusCommand) Actor() job.Actor { return c.actor }

// Location returns where the change was reported from, or nil.
func (c UpdateJobStatusCommand) Location() *kernel.GeoPoint { return c.location }

// Note returns the free-text note for the status event.
func (c UpdateJobStatusCommand) Note() string { return c.note }
