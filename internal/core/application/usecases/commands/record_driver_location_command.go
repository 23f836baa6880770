package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRecordDriverLocationCommandIsNotConstructed = errors.New(
	"RecordDriverLocationCommand must be created via NewRecordDriverLocationCommand constructor",
)

// RecordDriverLocationCommand represents a driver's location report.
type RecordDriverLocationCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	point    kernel.GeoPoint
	altitude *float64
	accuracy *float64
	speed    *float64
	heading  *float64

	guard guard.ConstructorGuard
}

// NewRecordDriverLocationCommand creates a command to record a location
// sample. Altitude, accuracy, speed and heading may be nil; their range
// checks live in the tracking model.
func NewRecordDriverLocationCommand(
	driverID kernel.UUID,
	point kernel.GeoPoint,
	altitude, accuracy, speed, heading *float64,
) (RecordDriverLocationCommand, error) {
	cmd := RecordDriverLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driverID.Validate(),
		point.Validate(),
	); err != nil {
		return RecordDriverLocationCommand{}, err
	}

	cmd.driverID = driverID
	cmd.point = point
	cmd.altitude = altitude
	cmd.accuracy = accuracy
	cmd.speed = speed
	cmd.heading = heading
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrRecordDriverLocationCommandIsNotConstructed)
}

// DriverID returns the reporting driver.
func (c RecordDriverLocationCommand) DriverID() kernel.UUID { return c.driverID }

// Point returns the reported coordinate.
func (c RecordDriverLocationCommand) Point() kernel.GeoPoint { return c.point }

// Altitude returns the reported altitude in meters, or nil.
func (c RecordDriverLocationCommand) Altitude() *float64 { return c.altitude }

// Accuracy returns the reported horizontal accuracy in meters, or nil.
func (c RecordDriverLocationCommand) Accuracy() *float64 { return c.accuracy }

// Speed returns the reported speed in km/h, or nil.
func (c RecordDriverLocationCommand) Speed() *float64 { return c.speed }

// Heading returns the reported heading in degrees, or nil.
func (c RecordDriverLocationCommand) Heading() *float64 { return c.heading }
