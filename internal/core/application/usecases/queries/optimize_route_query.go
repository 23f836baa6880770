package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrOptimizeRouteQueryIsNotConstructed = errors.New(
	"OptimizeRouteQuery must be created via NewOptimizeRouteQuery constructor",
)

// OptimizeRouteQuery requests a visiting sequence over the pending jobs,
// optionally starting from the requester's current position.
type OptimizeRouteQuery struct { //nolint:recvcheck //using for validation
	start *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewOptimizeRouteQuery creates a route query. A nil start sequences from
// the depot origin.
func NewOptimizeRouteQuery(start *kernel.GeoPoint) (OptimizeRouteQuery, error) {
	if start != nil {
		if err := start.Validate(); err != nil {
			return OptimizeRouteQuery{}, err
		}
	}

	return OptimizeRouteQuery{
		start: start,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q OptimizeRouteQuery) Validate() error {
	return q.guard.Validate(ErrOptimizeRouteQueryIsNotConstructed)
}

// Start returns the starting position, or nil for the depot origin.
func (q OptimizeRouteQuery) Start() *kernel.GeoPoint { return q.start }

// RouteWaypointResponse is one stop of a planned route.
type RouteWaypointResponse struct {
	JobID      kernel.UUID
	Kind       string
	Latitude   float64
	Longitude  float64
	DistanceKm float64
}

// OptimizeRouteQueryResponse is the planned sequence over pending jobs.
type OptimizeRouteQueryResponse struct {
	JobOrder         []kernel.UUID
	Waypoints        []RouteWaypointResponse
	TotalDistanceKm  float64
	TotalDurationMin int
}
