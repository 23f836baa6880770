package jobrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GormJobRepository implements JobRepository using GORM.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

// activeStatuses are the statuses in which a job occupies its driver.
func activeStatuses() []string {
	return []string{
		job.Assigned.String(),
		job.EnRoutePickup.String(),
		job.PickedUp.String(),
		job.EnRouteDelivery.String(),
	}
}

// Add saves a new job and drains its accumulated events into the trail.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.persistEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing job and drains its accumulated events.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("jobId", aggregate.ID().String())
	}

	if err := r.persistEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("jobId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves jobs awaiting assignment, oldest first by number.
func (r *GormJobRepository) GetAllPending(ctx context.Context) ([]*job.Job, error) {
	var dtos []JobDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", job.Pending.String()).
		Order("number").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}

// CountActiveByDriver counts the driver's jobs in an active status.
func (r *GormJobRepository) CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int, error) {
	if err := driverID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("driver_id = ? AND status IN ?", driverID.Bytes(), activeStatuses()).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetHistory retrieves a job's status trail in chronological order.
func (r *GormJobRepository) GetHistory(ctx context.Context, jobID kernel.UUID) ([]job.StatusEvent, error) {
	if err := jobID.Validate(); err != nil {
		return nil, err
	}

	var exists int64
	if err := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ?", jobID.Bytes()).
		Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errs.NewObjectNotFoundError("jobId", jobID.String())
	}

	var dtos []StatusEventDTO
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID.Bytes()).
		Order("occurred_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]job.StatusEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// AppendEvent persists a single event outside the aggregate save path.
func (r *GormJobRepository) AppendEvent(ctx context.Context, event job.StatusEvent) error {
	dto := eventFromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// persistEvents drains the aggregate's accumulated events into the trail
// within the current transaction.
func (r *GormJobRepository) persistEvents(ctx context.Context, aggregate *job.Job) error {
	events := aggregate.TakeEvents()
	if len(events) == 0 {
		return nil
	}

	dtos := make([]StatusEventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, eventFromDomain(event))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
