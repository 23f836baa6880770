// Package trackrepo provides persistence for driver location samples. The
// table is append-only with time-bounded pruning; reads serve the freshness
// checks behind proximity queries.
package trackrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
)

// SampleDTO represents one driver location report.
type SampleDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID   uuid.UUID `gorm:"type:uuid;not null;index:idx_track_driver_time,priority:1"`
	Latitude   float64   `gorm:"type:double precision;not null"`
	Longitude  float64   `gorm:"type:double precision;not null"`
	Altitude   *float64  `gorm:"type:double precision"`
	Accuracy   *float64  `gorm:"type:double precision"`
	Speed      *float64  `gorm:"type:double precision"`
	Heading    *float64  `gorm:"type:double precision"`
	RecordedAt time.Time `gorm:"not null;index:idx_track_driver_time,priority:2"`
}

// TableName overrides GORM's default naming to use "track_samples".
func (SampleDTO) TableName() string {
	return "track_samples"
}

func fromDomain(sample *tracking.Sample) SampleDTO {
	return SampleDTO{
		ID:         sample.ID().Bytes(),
		DriverID:   sample.DriverID().Bytes(),
		Latitude:   sample.Point().Latitude(),
		Longitude:  sample.Point().Longitude(),
		Altitude:   sample.Altitude(),
		Accuracy:   sample.Accuracy(),
		Speed:      sample.Speed(),
		Heading:    sample.Heading(),
		RecordedAt: sample.RecordedAt(),
	}
}

func toDomain(dto SampleDTO) (*tracking.Sample, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreSample(id, driverID, point,
		dto.Altitude, dto.Accuracy, dto.Speed, dto.Heading, dto.RecordedAt)
}
