package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
)

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse returns the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// ActorRequest identifies who performs a state-changing operation.
type ActorRequest struct {
	ActorID   string `json:"actor_id"`
	ActorRole string `json:"actor_role"`
}

// CreateJobRequest is the body of POST /api/v1/jobs.
type CreateJobRequest struct {
	CustomerID string `json:"customer_id"`
	Priority   string `json:"priority,omitempty"`

	PickupAddress   string   `json:"pickup_address"`
	PickupLatitude  *float64 `json:"pickup_latitude,omitempty"`
	PickupLongitude *float64 `json:"pickup_longitude,omitempty"`

	DeliveryAddress   string   `json:"delivery_address"`
	DeliveryLatitude  *float64 `json:"delivery_latitude,omitempty"`
	DeliveryLongitude *float64 `json:"delivery_longitude,omitempty"`

	PickupContactName    string `json:"pickup_contact_name,omitempty"`
	PickupContactPhone   string `json:"pickup_contact_phone,omitempty"`
	DeliveryContactName  string `json:"delivery_contact_name,omitempty"`
	DeliveryContactPhone string `json:"delivery_contact_phone,omitempty"`

	ScheduledPickupAt   *time.Time `json:"scheduled_pickup_at,omitempty"`
	ScheduledDeliveryAt *time.Time `json:"scheduled_delivery_at,omitempty"`

	BasePrice         float64 `json:"base_price,omitempty"`
	AdditionalCharges float64 `json:"additional_charges,omitempty"`

	ActorRequest
}

// AssignJobRequest is the body of POST /api/v1/jobs/:id/assign.
type AssignJobRequest struct {
	DriverID string `json:"driver_id"`
	ActorRequest
}

// UpdateJobStatusRequest is the body of POST /api/v1/jobs/:id/status.
type UpdateJobStatusRequest struct {
	Status    string   `json:"status"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Note      string   `json:"note,omitempty"`
	ActorRequest
}

// CancelJobRequest is the body of POST /api/v1/jobs/:id/cancel.
type CancelJobRequest struct {
	Note string `json:"note,omitempty"`
	ActorRequest
}

// JobHistoryEvent is one entry of GET /api/v1/jobs/:id/history.
type JobHistoryEvent struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func historyFromQuery(events []queries.JobHistoryEventResponse) []JobHistoryEvent {
	response := make([]JobHistoryEvent, 0, len(events))
	for _, event := range events {
		response = append(response, JobHistoryEvent{
			ID:         event.ID.String(),
			Status:     event.Status,
			ActorID:    event.ActorID.String(),
			ActorRole:  event.ActorRole,
			Latitude:   event.Latitude,
			Longitude:  event.Longitude,
			Note:       event.Note,
			OccurredAt: event.OccurredAt,
		})
	}
	return response
}

// CreateDriverRequest is the body of POST /api/v1/drivers.
type CreateDriverRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
}

// SetDriverAvailabilityRequest is the body of PUT /api/v1/drivers/:id/availability.
type SetDriverAvailabilityRequest struct {
	Availability string `json:"availability"`
}

// RecordDriverLocationRequest is the body of POST /api/v1/drivers/:id/location.
type RecordDriverLocationRequest struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`
	Heading   *float64 `json:"heading,omitempty"`
}

// AvailableDriver is one entry of GET /api/v1/drivers/available.
type AvailableDriver struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Rating     float64   `json:"rating"`
	TotalJobs  int       `json:"total_jobs"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	DistanceKm float64   `json:"distance_km"`
	SampledAt  time.Time `json:"sampled_at"`
}

func availableDriversFromQuery(drivers []queries.AvailableDriverResponse) []AvailableDriver {
	response := make([]AvailableDriver, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, AvailableDriver{
			ID:         d.ID.String(),
			Name:       d.Name,
			Rating:     d.Rating,
			TotalJobs:  d.TotalJobs,
			Latitude:   d.Location.Latitude(),
			Longitude:  d.Location.Longitude(),
			DistanceKm: d.DistanceKm,
			SampledAt:  d.SampledAt,
		})
	}
	return response
}

// OptimizeRouteRequest is the body of POST /api/v1/routes/optimize.
type OptimizeRouteRequest struct {
	StartLatitude  *float64 `json:"start_latitude,omitempty"`
	StartLongitude *float64 `json:"start_longitude,omitempty"`
}

// RouteWaypoint is one stop of an optimized route.
type RouteWaypoint struct {
	JobID      string  `json:"job_id"`
	Kind       string  `json:"kind"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
}

// OptimizedRoute is the body of the route optimization response.
type OptimizedRoute struct {
	JobOrder         []string        `json:"job_order"`
	Waypoints        []RouteWaypoint `json:"waypoints"`
	TotalDistanceKm  float64         `json:"total_distance_km"`
	TotalDurationMin int             `json:"total_duration_min"`
}

func routeFromQuery(plan queries.OptimizeRouteQueryResponse) OptimizedRoute {
	order := make([]string, 0, len(plan.JobOrder))
	for _, id := range plan.JobOrder {
		order = append(order, id.String())
	}
	waypoints := make([]RouteWaypoint, 0, len(plan.Waypoints))
	for _, w := range plan.Waypoints {
		waypoints = append(waypoints, RouteWaypoint{
			JobID:      w.JobID.String(),
			Kind:       w.Kind,
			Latitude:   w.Latitude,
			Longitude:  w.Longitude,
			DistanceKm: w.DistanceKm,
		})
	}
	return OptimizedRoute{
		JobOrder:         order,
		Waypoints:        waypoints,
		TotalDistanceKm:  plan.TotalDistanceKm,
		TotalDurationMin: plan.TotalDurationMin,
	}
}
