package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
)

// TrackRepository defines the persistence contract for driver location
// samples. Samples are append-only and retained for a bounded window.
type TrackRepository interface {
	// Add persists a new location sample.
	Add(ctx context.Context, sample *tracking.Sample) error

	// GetLatest retrieves the driver's most recent sample recorded after
	// the cutoff, or nil when the driver has no sample inside the window.
	GetLatest(ctx context.Context, driverID kernel.UUID, after time.Time) (*tracking.Sample, error)

	// GetRecent retrieves the driver's samples recorded after the cutoff,
	// newest first.
	GetRecent(ctx context.Context, driverID kernel.UUID, after time.Time) ([]*tracking.Sample, error)

	// PruneDriverOlderThan deletes one driver's samples recorded before the
	// cutoff. Returns the number of samples deleted.
	PruneDriverOlderThan(ctx context.Context, driverID kernel.UUID, cutoff time.Time) (int64, error)

	// PruneOlderThan deletes all samples recorded before the cutoff, across
	// drivers. Used by the retention sweep. Returns the number deleted.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
