package queries

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/services"
)

// PendingJobsReader supplies the jobs awaiting assignment. Satisfied by
// ports.JobRepository.
type PendingJobsReader interface {
	GetAllPending(ctx context.Context) ([]*job.Job, error)
}

// OptimizeRouteQueryHandler sequences the pending jobs with the
// priority-weighted nearest-neighbor heuristic. Unlike the other query
// handlers it goes through the repository rather than raw SQL: the
// optimizer works on full aggregates, not a flat read model.
type OptimizeRouteQueryHandler struct {
	jobs      PendingJobsReader
	optimizer services.RouteOptimizer
}

// NewOptimizeRouteQueryHandler creates a handler for route queries.
func NewOptimizeRouteQueryHandler(jobs PendingJobsReader) OptimizeRouteQueryHandler {
	return OptimizeRouteQueryHandler{
		jobs:      jobs,
		optimizer: services.NewRouteOptimizer(),
	}
}

// Handle executes the route query over all pending jobs.
func (h OptimizeRouteQueryHandler) Handle(
	ctx context.Context,
	query OptimizeRouteQuery,
) (OptimizeRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return OptimizeRouteQueryResponse{}, err
	}

	pending, err := h.jobs.GetAllPending(ctx)
	if err != nil {
		return OptimizeRouteQueryResponse{}, err
	}

	plan, err := h.optimizer.Optimize(ctx, query.Start(), pending)
	if err != nil {
		return OptimizeRouteQueryResponse{}, err
	}

	waypoints := make([]RouteWaypointResponse, 0, len(plan.Waypoints))
	for _, w := range plan.Waypoints {
		waypoints = append(waypoints, RouteWaypointResponse{
			JobID:      w.JobID,
			Kind:       string(w.Kind),
			Latitude:   w.Point.Latitude(),
			Longitude:  w.Point.Longitude(),
			DistanceKm: w.DistanceKm,
		})
	}

	return OptimizeRouteQueryResponse{
		JobOrder:         plan.JobOrder,
		Waypoints:        waypoints,
		TotalDistanceKm:  plan.TotalDistanceKm,
		TotalDurationMin: plan.TotalDurationMin,
	}, nil
}
