// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetAvailableDriversQueryIsNotConstructed = errors.New(
	"GetAvailableDriversQuery must be created via NewGetAvailableDriversQuery constructor",
)

// SampleFreshness is how recent a driver's latest location sample must be
// for them to count as reachable in proximity results.
const SampleFreshness = time.Hour

// GetAvailableDriversQuery retrieves verified, available drivers near a
// point. Only drivers with a location sample fresher than SampleFreshness
// inside the radius qualify.
type GetAvailableDriversQuery struct { //nolint:recvcheck //using for validation
	center   kernel.GeoPoint
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewGetAvailableDriversQuery creates a proximity query around center.
func NewGetAvailableDriversQuery(center kernel.GeoPoint, radiusKm float64) (GetAvailableDriversQuery, error) {
	q := GetAvailableDriversQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := center.Validate(); err != nil {
		return GetAvailableDriversQuery{}, err
	}
	if radiusKm <= 0 {
		return GetAvailableDriversQuery{}, errs.NewValueIsInvalidError("radiusKm")
	}

	q.center = center
	q.radiusKm = radiusKm
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDriversQueryIsNotConstructed)
}

// Center returns the search origin.
func (q GetAvailableDriversQuery) Center() kernel.GeoPoint { return q.center }

// RadiusKm returns the search radius.
func (q GetAvailableDriversQuery) RadiusKm() float64 { return q.radiusKm }

// AvailableDriverResponse is one proximity result: the driver, their latest
// position and the haversine distance from the query center.
type AvailableDriverResponse struct {
	ID         kernel.UUID
	Name       string
	Rating     float64
	TotalJobs  int
	Location   kernel.GeoPoint
	DistanceKm float64
	SampledAt  time.Time
}
