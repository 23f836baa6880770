package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
	"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
)

// SetDriverAvailabilityCommand represents a driver's request to change their
// duty state (available, offline or break; busy is owned by assignment).
type SetDriverAvailabilityCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	target   driver.Availability

	guard guard.ConstructorGuard
}

// NewSetDriverAvailabilityCommand creates a command to change availability.
func NewSetDriverAvailabilityCommand(driverID kernel.UUID, target driver.Availability) (SetDriverAvailabilityCommand, error) {
	cmd := SetDriverAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driverID.Validate(),
		target.Validate(),
	); err != nil {
		return SetDriverAvailabilityCommand{}, err
	}

	cmd.driverID = driverID
	cmd.target = target
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAvailabilityCommandIsNotConstructed)
}

// DriverID returns the driver changing state.
func (c SetDriverAvailabilityCommand) DriverID() kernel.UUID { return c.driverID }

// Target returns the requested availability.
func (c SetDriverAvailabilityCommand) Target() driver.Availability { return c.target }
