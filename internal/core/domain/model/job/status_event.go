package job

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// StatusEvent is one entry in a job's append-only audit trail. Events are
// recorded for every attempted status change, successful or not, so the
// history is a complete record of intent. Events are never mutated or deleted.
type StatusEvent struct {
	id         kernel.UUID
	jobID      kernel.UUID
	status     Status
	actorID    kernel.UUID
	actorRole  Role
	location   *kernel.GeoPoint
	note       string
	occurredAt time.Time
}

// NewStatusEvent creates an audit event for a status change attempt.
// The location is optional; a non-nil location must be properly constructed.
func NewStatusEvent(
	jobID kernel.UUID,
	status Status,
	actor Actor,
	location *kernel.GeoPoint,
	note string,
) (StatusEvent, error) {
	if err := errors.Join(jobID.Validate(), status.Validate(), actor.ID.Validate(), actor.Role.Validate()); err != nil {
		return StatusEvent{}, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return StatusEvent{}, err
		}
	}

	return StatusEvent{
		id:         kernel.NewUUID(),
		jobID:      jobID,
		status:     status,
		actorID:    actor.ID,
		actorRole:  actor.Role,
		location:   location,
		note:       note,
		occurredAt: time.Now().UTC(),
	}, nil
}

// RestoreStatusEvent reconstructs an event from persistence without
// re-stamping the occurrence time.
func RestoreStatusEvent(
	id kernel.UUID,
	jobID kernel.UUID,
	status Status,
	actorID kernel.UUID,
	actorRole Role,
	location *kernel.GeoPoint,
	note string,
	occurredAt time.Time,
) StatusEvent {
	return StatusEvent{
		id:         id,
		jobID:      jobID,
		status:     status,
		actorID:    actorID,
		actorRole:  actorRole,
		location:   location,
		note:       note,
		occurredAt: occurredAt,
	}
}

// ID returns the event's unique identifier.
func (e StatusEvent) ID() kernel.UUID { return e.id }

// JobID returns the job the event belongs to.
func (e StatusEvent) JobID() kernel.UUID { return e.jobID }

// Status returns the status value that was set or attempted.
func (e StatusEvent) Status() Status { return e.status }

// ActorID returns who performed the change.
func (e StatusEvent) ActorID() kernel.UUID { return e.actorID }

// ActorRole returns the capacity in which the actor acted.
func (e StatusEvent) ActorRole() Role { return e.actorRole }

// Location returns where the change was reported from, or nil.
func (e StatusEvent) Location() *kernel.GeoPoint { return e.location }

// Note returns the free-text note attached to the change.
func (e StatusEvent) Note() string { return e.note }

// OccurredAt returns when the change happened.
func (e StatusEvent) OccurredAt() time.Time { return e.occurredAt }
