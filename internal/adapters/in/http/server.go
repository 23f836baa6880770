package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createJobHandler             commands.CreateJobCommandHandler
	assignJobHandler             commands.AssignJobCommandHandler
	updateJobStatusHandler       commands.UpdateJobStatusCommandHandler
	cancelJobHandler             commands.CancelJobCommandHandler
	createDriverHandler          commands.CreateDriverCommandHandler
	setDriverAvailabilityHandler commands.SetDriverAvailabilityCommandHandler
	recordDriverLocationHandler  commands.RecordDriverLocationCommandHandler

	// Query handlers
	getJobHistoryHandler       queries.GetJobHistoryQueryHandler
	getAvailableDriversHandler queries.GetAvailableDriversQueryHandler
	optimizeRouteHandler       queries.OptimizeRouteQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createJobHandler commands.CreateJobCommandHandler,
	assignJobHandler commands.AssignJobCommandHandler,
	updateJobStatusHandler commands.UpdateJobStatusCommandHandler,
	cancelJobHandler commands.CancelJobCommandHandler,
	createDriverHandler commands.CreateDriverCommandHandler,
	setDriverAvailabilityHandler commands.SetDriverAvailabilityCommandHandler,
	recordDriverLocationHandler commands.RecordDriverLocationCommandHandler,
	getJobHistoryHandler queries.GetJobHistoryQueryHandler,
	getAvailableDriversHandler queries.GetAvailableDriversQueryHandler,
	optimizeRouteHandler queries.OptimizeRouteQueryHandler,
) *Server {
	return &Server{
		createJobHandler:             createJobHandler,
		assignJobHandler:             assignJobHandler,
		updateJobStatusHandler:       updateJobStatusHandler,
		cancelJobHandler:             cancelJobHandler,
		createDriverHandler:          createDriverHandler,
		setDriverAvailabilityHandler: setDriverAvailabilityHandler,
		recordDriverLocationHandler:  recordDriverLocationHandler,
		getJobHistoryHandler:         getJobHistoryHandler,
		getAvailableDriversHandler:   getAvailableDriversHandler,
		optimizeRouteHandler:         optimizeRouteHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/jobs", s.CreateJob)
	api.POST("/jobs/:id/assign", s.AssignJob)
	api.POST("/jobs/:id/status", s.UpdateJobStatus)
	api.POST("/jobs/:id/cancel", s.CancelJob)
	api.GET("/jobs/:id/history", s.GetJobHistory)

	api.POST("/drivers", s.CreateDriver)
	api.PUT("/drivers/:id/availability", s.SetDriverAvailability)
	api.POST("/drivers/:id/location", s.RecordDriverLocation)
	api.GET("/drivers/available", s.GetAvailableDrivers)

	api.POST("/routes/optimize", s.OptimizeRoute)
}

// CreateJob handles POST /api/v1/jobs - registers a new delivery job.
func (s *Server) CreateJob(ctx echo.Context) error {
	var request CreateJobRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actor, err := parseActor(request.ActorRequest)
	if err != nil {
		return respondError(ctx, err)
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer_id")
	}

	priority := job.PriorityUnknown
	if request.Priority != "" {
		if priority, err = job.ParsePriority(request.Priority); err != nil {
			return respondError(ctx, err)
		}
	}

	pickupPoint, err := parseOptionalPoint(request.PickupLatitude, request.PickupLongitude)
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryPoint, err := parseOptionalPoint(request.DeliveryLatitude, request.DeliveryLongitude)
	if err != nil {
		return respondError(ctx, err)
	}

	jobID := kernel.NewUUID()
	cmd, err := commands.NewCreateJobCommand(commands.CreateJobCommandParams{
		JobID:           jobID,
		CustomerID:      customerID,
		Priority:        priority,
		PickupAddress:   request.PickupAddress,
		PickupPoint:     pickupPoint,
		DeliveryAddress: request.DeliveryAddress,
		DeliveryPoint:   deliveryPoint,
		PickupContact: job.Contact{
			Name:  request.PickupContactName,
			Phone: request.PickupContactPhone,
		},
		DeliveryContact: job.Contact{
			Name:  request.DeliveryContactName,
			Phone: request.DeliveryContactPhone,
		},
		ScheduledPickupAt:   request.ScheduledPickupAt,
		ScheduledDeliveryAt: request.ScheduledDeliveryAt,
		BasePrice:           request.BasePrice,
		AdditionalCharges:   request.AdditionalCharges,
		Actor:               actor,
	})
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createJobHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: jobID.String()})
}

// AssignJob handles POST /api/v1/jobs/:id/assign - attaches a driver to a
// pending job, claiming the driver's availability in the same transaction.
func (s *Server) AssignJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid job id")
	}

	var request AssignJobRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actor, err := parseActor(request.ActorRequest)
	if err != nil {
		return respondError(ctx, err)
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, "invalid driver_id")
	}

	cmd, err := commands.NewAssignJobCommand(jobID, driverID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.assignJobHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateJobStatus handles POST /api/v1/jobs/:id/status.
func (s *Server) UpdateJobStatus(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid job id")
	}

	var request UpdateJobStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actor, err := parseActor(request.ActorRequest)
	if err != nil {
		return respondError(ctx, err)
	}

	status, err := job.ParseStatus(request.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	location, err := parseOptionalPoint(request.Latitude, request.Longitude)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateJobStatusCommand(jobID, status, actor, location, request.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateJobStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelJob handles POST /api/v1/jobs/:id/cancel.
func (s *Server) CancelJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid job id")
	}

	var request CancelJobRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actor, err := parseActor(request.ActorRequest)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelJobCommand(jobID, actor, request.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.cancelJobHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetJobHistory handles GET /api/v1/jobs/:id/history - the full status
// trail, refused attempts included.
func (s *Server) GetJobHistory(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid job id")
	}

	query, err := queries.NewGetJobHistoryQuery(jobID)
	if err != nil {
		return respondError(ctx, err)
	}

	events, err := s.getJobHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, historyFromQuery(events))
}

// CreateDriver handles POST /api/v1/drivers - registers a new driver.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var request CreateDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	userID, err := kernel.UUIDFromString(request.UserID)
	if err != nil {
		return badRequest(ctx, "invalid user_id")
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(driverID, userID, request.Name, request.Phone)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: driverID.String()})
}

// SetDriverAvailability handles PUT /api/v1/drivers/:id/availability.
func (s *Server) SetDriverAvailability(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid driver id")
	}

	var request SetDriverAvailabilityRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := driver.ParseAvailability(request.Availability)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSetDriverAvailabilityCommand(driverID, target)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.setDriverAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordDriverLocation handles POST /api/v1/drivers/:id/location. The
// sample is accepted as long as it validates; index maintenance downstream
// is best effort.
func (s *Server) RecordDriverLocation(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid driver id")
	}

	var request RecordDriverLocationRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	point, err := kernel.NewGeoPoint(request.Latitude, request.Longitude)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRecordDriverLocationCommand(
		driverID, point,
		request.Altitude, request.Accuracy, request.Speed, request.Heading,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.recordDriverLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// GetAvailableDrivers handles GET /api/v1/drivers/available - proximity
// search over verified, available drivers with a fresh location sample.
func (s *Server) GetAvailableDrivers(ctx echo.Context) error {
	var params struct {
		Latitude  float64 `query:"lat"`
		Longitude float64 `query:"lon"`
		RadiusKm  float64 `query:"radius_km"`
	}
	if err := ctx.Bind(&params); err != nil {
		return badRequest(ctx, "invalid query parameters")
	}

	center, err := kernel.NewGeoPoint(params.Latitude, params.Longitude)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetAvailableDriversQuery(center, params.RadiusKm)
	if err != nil {
		return respondError(ctx, err)
	}

	drivers, err := s.getAvailableDriversHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, availableDriversFromQuery(drivers))
}

// OptimizeRoute handles POST /api/v1/routes/optimize - sequences the
// pending jobs into a driving plan.
func (s *Server) OptimizeRoute(ctx echo.Context) error {
	var request OptimizeRouteRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	start, err := parseOptionalPoint(request.StartLatitude, request.StartLongitude)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewOptimizeRouteQuery(start)
	if err != nil {
		return respondError(ctx, err)
	}

	plan, err := s.optimizeRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, routeFromQuery(plan))
}

func parseActor(request ActorRequest) (job.Actor, error) {
	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return job.Actor{}, errs.NewValueIsInvalidErrorWithCause("actor_id", err)
	}
	role, err := job.ParseRole(request.ActorRole)
	if err != nil {
		return job.Actor{}, err
	}
	return job.NewActor(actorID, role)
}

// parseOptionalPoint accepts either both coordinates or neither.
func parseOptionalPoint(latitude, longitude *float64) (*kernel.GeoPoint, error) {
	if latitude == nil && longitude == nil {
		return nil, nil
	}
	if latitude == nil {
		return nil, errs.NewValueIsRequiredError("latitude")
	}
	if longitude == nil {
		return nil, errs.NewValueIsRequiredError("longitude")
	}
	point, err := kernel.NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
