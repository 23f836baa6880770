package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateJobCommandIsNotConstructed = errors.New(
		"CreateJobCommand must be created via NewCreateJobCommand constructor",
	)
	ErrPickupAddressIsRequired   = errors.New("pickup address is required")
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
)

// CreateJobCommandParams carries the inputs for NewCreateJobCommand.
// JobID, CustomerID, PickupAddress, DeliveryAddress and Actor are required;
// everything else is optional.
type CreateJobCommandParams struct {
	JobID      kernel.UUID
	CustomerID kernel.UUID
	Priority   job.Priority

	PickupAddress   string
	PickupPoint     *kernel.GeoPoint
	DeliveryAddress string
	DeliveryPoint   *kernel.GeoPoint

	PickupContact   job.Contact
	DeliveryContact job.Contact

	ScheduledPickupAt   *time.Time
	ScheduledDeliveryAt *time.Time

	BasePrice         float64
	AdditionalCharges float64

	Actor job.Actor
}

// CreateJobCommand represents a request to register a new delivery job.
// Coordinates are optional; jobs created without them are excluded from
// distance estimation and route sequencing but are otherwise fully valid.
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	params CreateJobCommandParams

	guard guard.ConstructorGuard
}

// NewCreateJobCommand creates a command to register a new delivery job.
// Validates the identifiers, both addresses and any provided coordinates.
func NewCreateJobCommand(params CreateJobCommandParams) (CreateJobCommand, error) {
	cmd := CreateJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		params.JobID.Validate(),
		params.CustomerID.Validate(),
		requireText(params.PickupAddress, ErrPickupAddressIsRequired),
		requireText(params.DeliveryAddress, ErrDeliveryAddressIsRequired),
		validateOptionalPoint(params.PickupPoint),
		validateOptionalPoint(params.DeliveryPoint),
	); err != nil {
		return CreateJobCommand{}, err
	}

	if params.Priority == job.PriorityUnknown {
		params.Priority = job.DefaultPriority
	} else if err := params.Priority.Validate(); err != nil {
		return CreateJobCommand{}, err
	}

	cmd.params = params
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// Params returns the validated command inputs.
func (c CreateJobCommand) Params() CreateJobCommandParams {
	return c.params
}

func requireText(value string, missing error) error {
	if value == "" {
		return missing
	}
	return nil
}

func validateOptionalPoint(p *kernel.GeoPoint) error {
	if p == nil {
		return nil
	}
	return p.Validate()
}
