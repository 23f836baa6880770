package driverrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GormDriverRepository implements DriverRepository using GORM.
//
// The claim/release/compare-and-set methods issue a single conditional
// UPDATE each: the availability precondition sits in the WHERE clause and
// RowsAffected tells whether this caller won. When the update misses, a
// follow-up read distinguishes "no such driver" from "driver exists but the
// precondition failed".
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new driver to the database.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing driver to the database.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driverId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a driver by ID.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driverId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves verified drivers in available status, best
// rated first.
func (r *GormDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	if err := r.db.WithContext(ctx).
		Where("availability = ? AND verified", driver.Available.String()).
		Order("rating DESC, total_jobs DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}

	return drivers, nil
}

// ClaimForAssignment atomically moves the driver available → busy.
func (r *GormDriverRepository) ClaimForAssignment(ctx context.Context, id kernel.UUID) error {
	return r.conditionalSet(ctx, id, driver.Available, driver.Busy, "not available")
}

// ReleaseFromAssignment atomically moves the driver busy → available.
func (r *GormDriverRepository) ReleaseFromAssignment(ctx context.Context, id kernel.UUID) error {
	return r.conditionalSet(ctx, id, driver.Busy, driver.Available, "not busy")
}

// CompareAndSetAvailability moves the driver from → to only if the stored
// availability still equals from.
func (r *GormDriverRepository) CompareAndSetAvailability(
	ctx context.Context, id kernel.UUID, from, to driver.Availability,
) error {
	return r.conditionalSet(ctx, id, from, to, "availability changed")
}

func (r *GormDriverRepository) conditionalSet(
	ctx context.Context,
	id kernel.UUID,
	from, to driver.Availability,
	reason string,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ? AND availability = ?", id.Bytes(), from.String()).
		Update("availability", to.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// The row was not updated: either the driver does not exist or a
	// concurrent writer changed the availability first.
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	return errs.NewResourceConflictError("driver", id.String(), reason)
}
