package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// DriverIndex is a spatial index over drivers' last known positions. It is a
// shortlisting structure, not a source of truth: proximity queries return
// candidate driver IDs and the caller re-checks availability, verification
// and sample freshness against the repositories.
type DriverIndex interface {
	// Upsert records or moves a driver's position in the index.
	Upsert(ctx context.Context, driverID kernel.UUID, point kernel.GeoPoint) error

	// Remove drops a driver from the index, e.g. when they go offline.
	Remove(ctx context.Context, driverID kernel.UUID) error

	// Near returns IDs of drivers indexed within radiusKm of center. The
	// result carries no ordering guarantee.
	Near(ctx context.Context, center kernel.GeoPoint, radiusKm float64) ([]kernel.UUID, error)
}
