// Package ports defines the persistence and indexing interfaces for the
// dispatch domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates and
// their status event history.
type JobRepository interface {
	// Add persists a new job aggregate together with any events accumulated
	// on it, draining them in the same transaction.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job aggregate together with any
	// events accumulated on it.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetAllPending retrieves jobs awaiting assignment, oldest first.
	GetAllPending(ctx context.Context) ([]*job.Job, error)

	// CountActiveByDriver counts the driver's jobs in an active status
	// (assigned, en_route_pickup, picked_up, en_route_delivery).
	CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int, error)

	// GetHistory retrieves the full status event trail for a job in
	// chronological order. Returns ObjectNotFoundError when the job
	// does not exist.
	GetHistory(ctx context.Context, jobID kernel.UUID) ([]job.StatusEvent, error)

	// AppendEvent persists a single status event outside the aggregate's
	// own save path. Used to record refused transition attempts, which
	// must survive even though the aggregate itself is not updated.
	AppendEvent(ctx context.Context, event job.StatusEvent) error
}
