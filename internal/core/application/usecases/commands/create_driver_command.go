package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// ErrDriverNameIsRequired is returned when creating a driver without a name.
var ErrDriverNameIsRequired = errors.New("driver name is required")

// CreateDriverCommand represents a request to register a new driver profile.
// New drivers start offline and unverified.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	userID   kernel.UUID
	name     string
	phone    string

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand creates a command to register a driver.
func NewCreateDriverCommand(driverID, userID kernel.UUID, name, phone string) (CreateDriverCommand, error) {
	cmd := CreateDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driverID.Validate(),
		userID.Validate(),
		requireText(name, ErrDriverNameIsRequired),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	cmd.driverID = driverID
	cmd.userID = userID
	cmd.name = name
	cmd.phone = phone
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

// DriverID returns the new driver's identifier.
func (c CreateDriverCommand) DriverID() kernel.UUID { return c.driverID }

// UserID returns the linked user profile.
func (c CreateDriverCommand) UserID() kernel.UUID { return c.userID }

// Name returns the driver's display name.
func (c CreateDriverCommand) Name() string { return c.name }

// Phone returns the driver's contact phone.
func (c CreateDriverCommand) Phone() string { return c.phone }
