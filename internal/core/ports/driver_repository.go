package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
//
// The Claim/Release/CompareAndSetAvailability methods are conditional
// single-row updates: the availability precondition is part of the SQL
// predicate and the affected-row count decides the outcome. This is what
// makes the assignment and availability flows race-free without locks.
type DriverRepository interface {
	// Add persists a new driver aggregate.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllAvailable retrieves verified drivers in available status,
	// ordered by rating descending, then total completed jobs descending.
	GetAllAvailable(ctx context.Context) ([]*driver.Driver, error)

	// ClaimForAssignment atomically moves the driver available → busy.
	// Returns ObjectNotFoundError when the driver does not exist and
	// ResourceConflictError when the driver exists but was not available,
	// including when a concurrent claim won the race.
	ClaimForAssignment(ctx context.Context, id kernel.UUID) error

	// ReleaseFromAssignment atomically moves the driver busy → available
	// after the occupying job completes or is cancelled. Same error
	// contract as ClaimForAssignment.
	ReleaseFromAssignment(ctx context.Context, id kernel.UUID) error

	// CompareAndSetAvailability moves the driver from → to only if the
	// stored availability still equals from. Returns ResourceConflictError
	// when the stored value changed since it was read.
	CompareAndSetAvailability(ctx context.Context, id kernel.UUID, from, to driver.Availability) error
}
