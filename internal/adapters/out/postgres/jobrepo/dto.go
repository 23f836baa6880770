// Package jobrepo provides data transfer objects and mapping functions for
// job persistence. It implements the repository pattern for the job
// aggregate, handling conversion between domain entities and database rows,
// including the append-only status event trail.
package jobrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// JobDTO represents the database structure for persisting job aggregates.
// Statuses, priorities and roles are stored by their wire names so the rows
// stay readable and the read-side queries can filter on them directly.
type JobDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	TrackingCode string    `gorm:"type:varchar(32);not null;uniqueIndex"`

	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID   *uuid.UUID `gorm:"type:uuid;index"`

	Status   string `gorm:"type:varchar(32);not null;index"`
	Priority string `gorm:"type:varchar(16);not null"`

	PickupAddress     string   `gorm:"type:varchar(512);not null"`
	PickupLatitude    *float64 `gorm:"type:double precision"`
	PickupLongitude   *float64 `gorm:"type:double precision"`
	DeliveryAddress   string   `gorm:"type:varchar(512);not null"`
	DeliveryLatitude  *float64 `gorm:"type:double precision"`
	DeliveryLongitude *float64 `gorm:"type:double precision"`

	PickupContactName    string `gorm:"type:varchar(255)"`
	PickupContactPhone   string `gorm:"type:varchar(32)"`
	DeliveryContactName  string `gorm:"type:varchar(255)"`
	DeliveryContactPhone string `gorm:"type:varchar(32)"`

	ScheduledPickupAt   *time.Time
	ScheduledDeliveryAt *time.Time
	ActualPickupAt      *time.Time
	ActualDeliveryAt    *time.Time

	EstimatedDistanceKm  *float64 `gorm:"type:double precision"`
	EstimatedDurationMin *int
	ActualDistanceKm     *float64 `gorm:"type:double precision"`
	ActualDurationMin    *int

	BasePrice         float64 `gorm:"type:double precision;not null"`
	AdditionalCharges float64 `gorm:"type:double precision;not null"`
	TotalPrice        float64 `gorm:"type:double precision;not null"`
}

// TableName overrides GORM's default naming to use "jobs".
func (JobDTO) TableName() string {
	return "jobs"
}

// StatusEventDTO represents one row of a job's status trail, including
// refused attempts.
type StatusEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(32);not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	ActorRole  string    `gorm:"type:varchar(16);not null"`
	Latitude   *float64  `gorm:"type:double precision"`
	Longitude  *float64  `gorm:"type:double precision"`
	Note       string    `gorm:"type:varchar(512)"`
	OccurredAt time.Time `gorm:"not null;index"`
}

// TableName overrides GORM's default naming to use "job_status_events".
func (StatusEventDTO) TableName() string {
	return "job_status_events"
}

// fromDomain converts a job aggregate to its database representation.
func fromDomain(aggregate *job.Job) JobDTO {
	var driverID *uuid.UUID
	if aggregate.DriverID() != nil {
		raw := aggregate.DriverID().Bytes()
		driverID = &raw
	}

	pickupLat, pickupLon := pointColumns(aggregate.Pickup().Point())
	deliveryLat, deliveryLon := pointColumns(aggregate.Delivery().Point())

	return JobDTO{
		ID:           aggregate.ID().Bytes(),
		Number:       aggregate.Number(),
		TrackingCode: aggregate.TrackingCode(),

		CustomerID: aggregate.CustomerID().Bytes(),
		DriverID:   driverID,

		Status:   aggregate.Status().String(),
		Priority: aggregate.Priority().String(),

		PickupAddress:     aggregate.Pickup().Address(),
		PickupLatitude:    pickupLat,
		PickupLongitude:   pickupLon,
		DeliveryAddress:   aggregate.Delivery().Address(),
		DeliveryLatitude:  deliveryLat,
		DeliveryLongitude: deliveryLon,

		PickupContactName:    aggregate.PickupContact().Name,
		PickupContactPhone:   aggregate.PickupContact().Phone,
		DeliveryContactName:  aggregate.DeliveryContact().Name,
		DeliveryContactPhone: aggregate.DeliveryContact().Phone,

		ScheduledPickupAt:   aggregate.ScheduledPickupAt(),
		ScheduledDeliveryAt: aggregate.ScheduledDeliveryAt(),
		ActualPickupAt:      aggregate.ActualPickupAt(),
		ActualDeliveryAt:    aggregate.ActualDeliveryAt(),

		EstimatedDistanceKm:  aggregate.EstimatedDistanceKm(),
		EstimatedDurationMin: aggregate.EstimatedDurationMin(),
		ActualDistanceKm:     aggregate.ActualDistanceKm(),
		ActualDurationMin:    aggregate.ActualDurationMin(),

		BasePrice:         aggregate.Pricing().Base(),
		AdditionalCharges: aggregate.Pricing().Additional(),
		TotalPrice:        aggregate.Pricing().Total(),
	}
}

// eventFromDomain converts a status event to its database representation.
func eventFromDomain(event job.StatusEvent) StatusEventDTO {
	lat, lon := pointColumns(event.Location())

	return StatusEventDTO{
		ID:         event.ID().Bytes(),
		JobID:      event.JobID().Bytes(),
		Status:     event.Status().String(),
		ActorID:    event.ActorID().Bytes(),
		ActorRole:  event.ActorRole().String(),
		Latitude:   lat,
		Longitude:  lon,
		Note:       event.Note(),
		OccurredAt: event.OccurredAt(),
	}
}

// toDomain converts a database row to a job aggregate via RestoreJob.
func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, dErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if dErr != nil {
			return nil, dErr
		}
		driverID = &dID
	}

	status, err := job.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	priority, err := job.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}

	pickup, err := placeFromColumns(dto.PickupAddress, dto.PickupLatitude, dto.PickupLongitude)
	if err != nil {
		return nil, err
	}
	delivery, err := placeFromColumns(dto.DeliveryAddress, dto.DeliveryLatitude, dto.DeliveryLongitude)
	if err != nil {
		return nil, err
	}

	pricing, err := job.NewPricing(dto.BasePrice, dto.AdditionalCharges)
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(
		id, dto.Number, dto.TrackingCode, customerID, driverID, status, priority,
		pickup, delivery,
		job.Contact{Name: dto.PickupContactName, Phone: dto.PickupContactPhone},
		job.Contact{Name: dto.DeliveryContactName, Phone: dto.DeliveryContactPhone},
		dto.ScheduledPickupAt, dto.ScheduledDeliveryAt,
		dto.ActualPickupAt, dto.ActualDeliveryAt,
		dto.EstimatedDistanceKm, dto.EstimatedDurationMin,
		dto.ActualDistanceKm, dto.ActualDurationMin,
		pricing,
	)
}

// eventToDomain converts a database row to a status event.
func eventToDomain(dto StatusEventDTO) (job.StatusEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return job.StatusEvent{}, err
	}
	jobID, err := kernel.UUIDFromBytes(dto.JobID[:])
	if err != nil {
		return job.StatusEvent{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return job.StatusEvent{}, err
	}

	status, err := job.ParseStatus(dto.Status)
	if err != nil {
		return job.StatusEvent{}, err
	}
	role, err := job.ParseRole(dto.ActorRole)
	if err != nil {
		return job.StatusEvent{}, err
	}

	location, err := pointFromColumns(dto.Latitude, dto.Longitude)
	if err != nil {
		return job.StatusEvent{}, err
	}

	return job.RestoreStatusEvent(id, jobID, status, actorID, role, location, dto.Note, dto.OccurredAt), nil
}

func pointColumns(p *kernel.GeoPoint) (*float64, *float64) {
	if p == nil {
		return nil, nil
	}
	lat := p.Latitude()
	lon := p.Longitude()
	return &lat, &lon
}

func pointFromColumns(lat, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	p, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func placeFromColumns(address string, lat, lon *float64) (job.Place, error) {
	point, err := pointFromColumns(lat, lon)
	if err != nil {
		return job.Place{}, err
	}
	return job.NewPlace(address, point)
}
