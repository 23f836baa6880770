package trackrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
)

// GormTrackRepository implements TrackRepository using GORM.
type GormTrackRepository struct {
	db *gorm.DB
}

// NewGormTrackRepository creates a new GORM track repository.
func NewGormTrackRepository(db *gorm.DB) *GormTrackRepository {
	return &GormTrackRepository{db: db}
}

// Add persists a new location sample.
func (r *GormTrackRepository) Add(ctx context.Context, sample *tracking.Sample) error {
	dto := fromDomain(sample)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetLatest retrieves the driver's most recent sample after the cutoff, or
// nil when none exists inside the window.
func (r *GormTrackRepository) GetLatest(
	ctx context.Context, driverID kernel.UUID, after time.Time,
) (*tracking.Sample, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dto SampleDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND recorded_at > ?", driverID.Bytes(), after).
		Order("recorded_at DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetRecent retrieves the driver's samples after the cutoff, newest first.
func (r *GormTrackRepository) GetRecent(
	ctx context.Context, driverID kernel.UUID, after time.Time,
) ([]*tracking.Sample, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SampleDTO
	if err := r.db.WithContext(ctx).
		Where("driver_id = ? AND recorded_at > ?", driverID.Bytes(), after).
		Order("recorded_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	samples := make([]*tracking.Sample, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	return samples, nil
}

// PruneDriverOlderThan deletes one driver's samples recorded before the cutoff.
func (r *GormTrackRepository) PruneDriverOlderThan(
	ctx context.Context, driverID kernel.UUID, cutoff time.Time,
) (int64, error) {
	if err := driverID.Validate(); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Where("driver_id = ? AND recorded_at < ?", driverID.Bytes(), cutoff).
		Delete(&SampleDTO{})
	return result.RowsAffected, result.Error
}

// PruneOlderThan deletes all samples recorded before the cutoff.
func (r *GormTrackRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("recorded_at < ?", cutoff).
		Delete(&SampleDTO{})
	return result.RowsAffected, result.Error
}
