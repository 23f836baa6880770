package tracking

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Sample is a single immutable location report from a driver. The coordinate
// is required; altitude, accuracy, speed and heading are reported only by
// devices that have them.
type Sample struct {
	id         kernel.UUID
	driverID   kernel.UUID
	point      kernel.GeoPoint
	altitude   *float64
	accuracy   *float64
	speed      *float64
	heading    *float64
	recordedAt time.Time
}

// NewSample creates a Sample stamped with the current UTC time.
func NewSample(driverID kernel.UUID, point kernel.GeoPoint,
	altitude, accuracy, speed, heading *float64) (*Sample, error) {
	if err := driverID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	if err := point.Validate(); err != nil {
		return nil, err
	}
	if heading != nil && (*heading < 0 || *heading >= 360) {
		return nil, errs.NewValueIsOutOfRangeError("heading", *heading, 0, 360)
	}
	if speed != nil && *speed < 0 {
		return nil, errs.NewValueIsInvalidError("speed")
	}

	return &Sample{
		id:         kernel.NewUUID(),
		driverID:   driverID,
		point:      point,
		altitude:   altitude,
		accuracy:   accuracy,
		speed:      speed,
		heading:    heading,
		recordedAt: time.Now().UTC(),
	}, nil
}

// RestoreSample reconstructs a Sample from persistence.
func RestoreSample(id kernel.UUID, driverID kernel.UUID, point kernel.GeoPoint,
	altitude, accuracy, speed, heading *float64, recordedAt time.Time) (*Sample, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := driverID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	if err := point.Validate(); err != nil {
		return nil, err
	}

	return &Sample{
		id:         id,
		driverID:   driverID,
		point:      point,
		altitude:   altitude,
		accuracy:   accuracy,
		speed:      speed,
		heading:    heading,
		recordedAt: recordedAt,
	}, nil
}

// ID returns the sample's unique identifier.
func (s *Sample) ID() kernel.UUID { return s.id }

// DriverID returns the reporting driver.
func (s *Sample) DriverID() kernel.UUID { return s.driverID }

// Point returns the reported coordinate.
func (s *Sample) Point() kernel.GeoPoint { return s.point }

// Altitude returns the reported altitude in meters, or nil.
func (s *Sample) Altitude() *float64 { return s.altitude }

// Accuracy returns the reported horizontal accuracy in meters, or nil.
func (s *Sample) Accuracy() *float64 { return s.accuracy }

// Speed returns the reported speed in km/h, or nil.
func (s *Sample) Speed() *float64 { return s.speed }

// Heading returns the reported heading in degrees [0, 360), or nil.
func (s *Sample) Heading() *float64 { return s.heading }

// RecordedAt returns the UTC time the sample was taken.
func (s *Sample) RecordedAt() time.Time { return s.recordedAt }

// IsFresherThan reports whether the sample was recorded after the cutoff.
func (s *Sample) IsFresherThan(cutoff time.Time) bool {
	return s.recordedAt.After(cutoff)
}
