package services

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// avgRouteSpeedKmh is the assumed travel speed for route leg durations.
const avgRouteSpeedKmh = 50.0

// Waypoint is one stop on a planned route: the pickup or delivery point of a
// specific job.
type Waypoint struct {
	JobID      kernel.UUID
	Kind       WaypointKind
	Point      kernel.GeoPoint
	DistanceKm float64 // distance from the previous waypoint
}

// WaypointKind distinguishes pickup stops from delivery stops.
type WaypointKind string

const (
	// WaypointPickup marks a job's pickup stop.
	WaypointPickup WaypointKind = "pickup"
	// WaypointDelivery marks a job's delivery stop.
	WaypointDelivery WaypointKind = "delivery"
)

// RoutePlan is the ordered result of route optimization: the job visiting
// order, the flattened waypoint list (pickup then delivery per job) and the
// unweighted totals over the actual leg distances.
type RoutePlan struct {
	JobOrder        []kernel.UUID
	Waypoints       []Waypoint
	TotalDistanceKm float64
	TotalDurationMin int
}

// RouteOptimizer sequences a set of jobs for a single driver using a
// priority-weighted nearest-neighbor heuristic.
//
// At each step the job with the smallest weighted distance from the current
// location is selected, where the weight discounts urgent (0.5) and high
// (0.7) priority jobs so they are visited earlier than raw distance alone
// would dictate. Ties keep the input order. After selecting a job the current
// location advances to its delivery coordinate when one is present, otherwise
// to its pickup coordinate.
//
// This is a greedy O(n²) heuristic. It produces good-enough sequences for
// the fleet sizes this service handles; it does not find the optimal tour.
type RouteOptimizer struct{}

// NewRouteOptimizer creates a new RouteOptimizer.
func NewRouteOptimizer() RouteOptimizer {
	return RouteOptimizer{}
}

// Optimize sequences jobs starting from start. A nil start means the depot
// origin (0, 0). Jobs without pickup coordinates cannot be routed and are
// excluded from the plan. Reported totals use the actual (unweighted)
// distances; leg duration assumes 50 km/h average speed.
//
// Optimize honors ctx: cancellation between selection steps returns the
// context's error.
func (o RouteOptimizer) Optimize(ctx context.Context, start *kernel.GeoPoint, jobs []*job.Job) (RoutePlan, error) {
	current := kernel.Origin()
	if start != nil {
		current = *start
	}

	remaining := make([]*job.Job, 0, len(jobs))
	for _, j := range jobs {
		if j != nil && j.Pickup().HasPoint() {
			remaining = append(remaining, j)
		}
	}

	plan := RoutePlan{
		JobOrder:  make([]kernel.UUID, 0, len(remaining)),
		Waypoints: make([]Waypoint, 0, 2*len(remaining)),
	}

	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return RoutePlan{}, err
		}

		bestIdx, err := o.nearest(current, remaining)
		if err != nil {
			return RoutePlan{}, err
		}
		selected := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		pickup := *selected.Pickup().Point()
		pickupKm, err := current.DistanceKm(pickup)
		if err != nil {
			return RoutePlan{}, err
		}

		plan.JobOrder = append(plan.JobOrder, selected.ID())
		plan.Waypoints = append(plan.Waypoints, Waypoint{
			JobID:      selected.ID(),
			Kind:       WaypointPickup,
			Point:      pickup,
			DistanceKm: pickupKm,
		})
		plan.TotalDistanceKm += pickupKm
		current = pickup

		if selected.Delivery().HasPoint() {
			delivery := *selected.Delivery().Point()
			deliveryKm, err := pickup.DistanceKm(delivery)
			if err != nil {
				return RoutePlan{}, err
			}
			plan.Waypoints = append(plan.Waypoints, Waypoint{
				JobID:      selected.ID(),
				Kind:       WaypointDelivery,
				Point:      delivery,
				DistanceKm: deliveryKm,
			})
			plan.TotalDistanceKm += deliveryKm
			current = delivery
		} else {
			// No delivery coordinate; the waypoint list still carries the
			// pickup-only stop and routing continues from it.
			plan.Waypoints = append(plan.Waypoints, Waypoint{
				JobID: selected.ID(),
				Kind:  WaypointDelivery,
				Point: pickup,
			})
		}
	}

	plan.TotalDurationMin = kernel.TravelMinutes(plan.TotalDistanceKm, avgRouteSpeedKmh)
	return plan, nil
}

// nearest returns the index of the job with the smallest priority-weighted
// distance from current. Strict less-than keeps the earliest input index on
// ties.
func (o RouteOptimizer) nearest(current kernel.GeoPoint, jobs []*job.Job) (int, error) {
	bestIdx := 0
	bestWeighted := -1.0

	for i, j := range jobs {
		km, err := current.DistanceKm(*j.Pickup().Point())
		if err != nil {
			return 0, err
		}
		weighted := km * j.Priority().DistanceMultiplier()
		if bestWeighted < 0 || weighted < bestWeighted {
			bestIdx = i
			bestWeighted = weighted
		}
	}
	return bestIdx, nil
}
