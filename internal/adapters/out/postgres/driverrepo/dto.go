// Package driverrepo provides data transfer objects and mapping functions
// for driver persistence, including the conditional availability updates the
// assignment flow relies on.
package driverrepo

import (
	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverDTO represents the database structure for persisting driver
// aggregates. Availability is stored by wire name; the conditional updates
// put it in their WHERE clause.
type DriverDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Name         string     `gorm:"type:varchar(255);not null"`
	Phone        string     `gorm:"type:varchar(32)"`
	Availability string     `gorm:"type:varchar(16);not null;index"`
	VehicleID    *uuid.UUID `gorm:"type:uuid"`
	TotalJobs    int        `gorm:"not null;default:0"`
	Rating       float64    `gorm:"type:double precision;not null;default:0"`
	Earnings     float64    `gorm:"type:double precision;not null;default:0"`
	Verified     bool       `gorm:"not null;default:false"`
}

// TableName overrides GORM's default naming to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	var vehicleID *uuid.UUID
	if aggregate.VehicleID() != nil {
		raw := aggregate.VehicleID().Bytes()
		vehicleID = &raw
	}

	return DriverDTO{
		ID:           aggregate.ID().Bytes(),
		UserID:       aggregate.UserID().Bytes(),
		Name:         aggregate.Name(),
		Phone:        aggregate.Phone(),
		Availability: aggregate.Availability().String(),
		VehicleID:    vehicleID,
		TotalJobs:    aggregate.TotalJobs(),
		Rating:       aggregate.Rating(),
		Earnings:     aggregate.Earnings(),
		Verified:     aggregate.IsVerified(),
	}
}

// toDomain converts a database row to a driver aggregate via RestoreDriver.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	availability, err := driver.ParseAvailability(dto.Availability)
	if err != nil {
		return nil, err
	}

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		vID, vErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if vErr != nil {
			return nil, vErr
		}
		vehicleID = &vID
	}

	return driver.RestoreDriver(id, userID, dto.Name, dto.Phone, availability,
		vehicleID, dto.TotalJobs, dto.Rating, dto.Earnings, dto.Verified)
}
