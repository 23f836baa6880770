package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/job"
)

// CreateJobCommandHandler handles the business logic for job creation.
// Builds the aggregate in pending status, computes distance/duration
// estimates when both coordinate pairs are present and derives the quote
// when no explicit base price was given.
type CreateJobCommandHandler struct {
	uowFactory JobUoWFactory
}

// NewCreateJobCommandHandler creates a handler for job creation operations.
// Requires a JobUoWFactory for transactional persistence.
func NewCreateJobCommandHandler(uowFactory JobUoWFactory) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the job creation command. The new job and its initial
// pending event are persisted in one transaction.
func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	p := cmd.Params()

	pickup, err := job.NewPlace(p.PickupAddress, p.PickupPoint)
	if err != nil {
		return err
	}
	delivery, err := job.NewPlace(p.DeliveryAddress, p.DeliveryPoint)
	if err != nil {
		return err
	}

	aggregate, err := job.NewJob(job.NewJobParams{
		ID:                  p.JobID,
		Number:              jobNumber(p.JobID),
		TrackingCode:        trackingCode(p.JobID),
		CustomerID:          p.CustomerID,
		Priority:            p.Priority,
		Pickup:              pickup,
		Delivery:            delivery,
		PickupContact:       p.PickupContact,
		DeliveryContact:     p.DeliveryContact,
		ScheduledPickupAt:   p.ScheduledPickupAt,
		ScheduledDeliveryAt: p.ScheduledDeliveryAt,
		BasePrice:           p.BasePrice,
		AdditionalCharges:   p.AdditionalCharges,
		Actor:               p.Actor,
	})
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.JobRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// jobNumber derives a human-readable job number, JOB-<yyyymmdd>-<suffix>.
// The suffix comes from the client-generated job ID, so the number is stable
// across retries of the same creation request within a day.
func jobNumber(id fmt.Stringer) string {
	return "JOB-" + time.Now().UTC().Format("20060102") + "-" + shortID(id)
}

func trackingCode(id fmt.Stringer) string {
	return "TRK-" + shortID(id)
}

func shortID(id fmt.Stringer) string {
	s := id.String()
	if len(s) >= 8 {
		s = s[:8]
	}
	return s
}
