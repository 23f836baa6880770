package job

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrJobIsNotConstructed is returned when a Job was not created through
// NewJob or RestoreJob.
var ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")

// Job is the aggregate root for a delivery. It owns the lifecycle state
// machine and enforces its invariants:
//
//   - driverID is nil exactly until a driver is assigned; once assigned it
//     stays fixed (there is no reassignment flow)
//   - status changes follow the transition graph in Status and the role
//     permissions in Role
//   - every attempted status change produces a StatusEvent; accumulated
//     events are drained by the repository within the same transaction
//   - picked_up stamps the actual pickup time, delivered stamps the actual
//     delivery time
type Job struct {
	id           kernel.UUID
	number       string
	trackingCode string

	customerID kernel.UUID
	driverID   *kernel.UUID

	status   Status
	priority Priority

	pickup          Place
	delivery        Place
	pickupContact   Contact
	deliveryContact Contact

	scheduledPickupAt   *time.Time
	scheduledDeliveryAt *time.Time
	actualPickupAt      *time.Time
	actualDeliveryAt    *time.Time

	estimatedDistanceKm  *float64
	estimatedDurationMin *int
	actualDistanceKm     *float64
	actualDurationMin    *int

	pricing Pricing

	events []StatusEvent

	guard guard.ConstructorGuard
}

// NewJobParams carries the inputs for NewJob. Required fields: ID, Number,
// TrackingCode, CustomerID, Pickup, Delivery, Actor. Priority zero value
// falls back to DefaultPriority.
type NewJobParams struct {
	ID           kernel.UUID
	Number       string
	TrackingCode string
	CustomerID   kernel.UUID
	Priority     Priority

	Pickup          Place
	Delivery        Place
	PickupContact   Contact
	DeliveryContact Contact

	ScheduledPickupAt   *time.Time
	ScheduledDeliveryAt *time.Time

	// BasePrice of zero means "no explicit price": the total is then derived
	// from the estimated distance, floored at MinTotalPrice.
	BasePrice         float64
	AdditionalCharges float64

	// Actor is the creator, recorded on the initial pending event.
	Actor Actor
}

// NewJob creates a Job in pending status. When both pickup and delivery carry
// coordinates, the estimated distance and duration are computed; when no
// explicit base price is given, the total is derived as
// max(MinTotalPrice, distanceKm * PricePerKm). The initial pending event is
// recorded on the aggregate.
func NewJob(p NewJobParams) (*Job, error) {
	j := &Job{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	priority := p.Priority
	if priority == PriorityUnknown {
		priority = DefaultPriority
	}

	if err := errors.Join(
		j.setID(p.ID),
		j.setNumber(p.Number),
		j.setTrackingCode(p.TrackingCode),
		j.setCustomerID(p.CustomerID),
		j.setPriority(priority),
		j.setPickup(p.Pickup),
		j.setDelivery(p.Delivery),
	); err != nil {
		return nil, err
	}

	j.pickupContact = p.PickupContact
	j.deliveryContact = p.DeliveryContact
	j.scheduledPickupAt = p.ScheduledPickupAt
	j.scheduledDeliveryAt = p.ScheduledDeliveryAt

	if j.pickup.HasPoint() && j.delivery.HasPoint() {
		distanceKm, err := j.pickup.Point().DistanceKm(*j.delivery.Point())
		if err != nil {
			return nil, err
		}
		durationMin := kernel.EstimateDurationMin(distanceKm, kernel.DefaultAvgSpeedKmh)
		j.estimatedDistanceKm = &distanceKm
		j.estimatedDurationMin = &durationMin
	}

	pricing, err := j.quote(p.BasePrice, p.AdditionalCharges)
	if err != nil {
		return nil, err
	}
	j.pricing = pricing

	if err := j.recordEvent(Pending, p.Actor, nil, "job created"); err != nil {
		return nil, err
	}

	return j, nil
}

// RestoreJob reconstructs a Job from persistence. No events are recorded and
// no derived fields are recomputed; the stored state is taken as-is.
func RestoreJob(
	id kernel.UUID,
	number string,
	trackingCode string,
	customerID kernel.UUID,
	driverID *kernel.UUID,
	status Status,
	priority Priority,
	pickup Place,
	delivery Place,
	pickupContact Contact,
	deliveryContact Contact,
	scheduledPickupAt *time.Time,
	scheduledDeliveryAt *time.Time,
	actualPickupAt *time.Time,
	actualDeliveryAt *time.Time,
	estimatedDistanceKm *float64,
	estimatedDurationMin *int,
	actualDistanceKm *float64,
	actualDurationMin *int,
	pricing Pricing,
) (*Job, error) {
	j := &Job{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setNumber(number),
		j.setTrackingCode(trackingCode),
		j.setCustomerID(customerID),
		j.setPriority(priority),
		j.setPickup(pickup),
		j.setDelivery(delivery),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		j.driverID = driverID
	}

	j.status = status
	j.pickupContact = pickupContact
	j.deliveryContact = deliveryContact
	j.scheduledPickupAt = scheduledPickupAt
	j.scheduledDeliveryAt = scheduledDeliveryAt
	j.actualPickupAt = actualPickupAt
	j.actualDeliveryAt = actualDeliveryAt
	j.estimatedDistanceKm = estimatedDistanceKm
	j.estimatedDurationMin = estimatedDurationMin
	j.actualDistanceKm = actualDistanceKm
	j.actualDurationMin = actualDurationMin
	j.pricing = pricing

	return j, nil
}

// Validate ensures the Job was created through a constructor.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID { return j.id }

// Number returns the human-readable job number.
func (j *Job) Number() string { return j.number }

// TrackingCode returns the customer-facing tracking code.
func (j *Job) TrackingCode() string { return j.trackingCode }

// CustomerID returns the customer reference.
func (j *Job) CustomerID() kernel.UUID { return j.customerID }

// DriverID returns the assigned driver, or nil while unassigned.
func (j *Job) DriverID() *kernel.UUID { return j.driverID }

// Status returns the current lifecycle status.
func (j *Job) Status() Status { return j.status }

// Priority returns the job priority.
func (j *Job) Priority() Priority { return j.priority }

// Pickup returns the pickup place.
func (j *Job) Pickup() Place { return j.pickup }

// Delivery returns the delivery place.
func (j *Job) Delivery() Place { return j.delivery }

// PickupContact returns the pickup contact details.
func (j *Job) PickupContact() Contact { return j.pickupContact }

// DeliveryContact returns the delivery contact details.
func (j *Job) DeliveryContact() Contact { return j.deliveryContact }

// ScheduledPickupAt returns the scheduled pickup time, or nil.
func (j *Job) ScheduledPickupAt() *time.Time { return j.scheduledPickupAt }

// ScheduledDeliveryAt returns the scheduled delivery time, or nil.
func (j *Job) ScheduledDeliveryAt() *time.Time { return j.scheduledDeliveryAt }

// ActualPickupAt returns when the cargo was picked up, or nil.
func (j *Job) ActualPickupAt() *time.Time { return j.actualPickupAt }

// ActualDeliveryAt returns when the cargo was delivered, or nil.
func (j *Job) ActualDeliveryAt() *time.Time { return j.actualDeliveryAt }

// EstimatedDistanceKm returns the estimated trip distance, or nil when either
// place lacks coordinates.
func (j *Job) EstimatedDistanceKm() *float64 { return j.estimatedDistanceKm }

// EstimatedDurationMin returns the estimated trip duration, or nil.
func (j *Job) EstimatedDurationMin() *int { return j.estimatedDurationMin }

// ActualDistanceKm returns the measured trip distance, or nil.
func (j *Job) ActualDistanceKm() *float64 { return j.actualDistanceKm }

// ActualDurationMin returns the measured trip duration, or nil.
func (j *Job) ActualDurationMin() *int { return j.actualDurationMin }

// Pricing returns the job's monetary breakdown.
func (j *Job) Pricing() Pricing { return j.pricing }

// IsActive reports whether the job currently occupies its driver.
// The active statuses are assigned, en_route_pickup, picked_up and
// en_route_delivery; a driver with any active job may not go offline.
func (j *Job) IsActive() bool {
	switch j.status {
	case Assigned, EnRoutePickup, PickedUp, EnRouteDelivery:
		return true
	default:
		return false
	}
}

// Assign attaches a driver to a pending job and moves it to assigned.
// The availability claim on the driver happens in the same transaction at the
// persistence layer; this method only enforces the job-side invariants.
func (j *Job) Assign(driverID kernel.UUID, actor Actor) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if j.status != Pending {
		return errs.NewInvalidStateTransitionErrorWithCause(
			j.status.String(), Assigned.String(),
			fmt.Errorf("only pending jobs can be assigned"))
	}

	j.status = Assigned
	j.driverID = &driverID

	return j.recordEvent(Assigned, actor, nil, "driver assigned")
}

// UpdateStatus moves the job to newStatus on behalf of actor.
// The actor's role must permit the target status and the transition graph
// must have an edge from the current status. Setting picked_up stamps the
// actual pickup time; setting delivered stamps the actual delivery time and
// computes the actual trip duration when a pickup stamp exists.
//
// On success the change is recorded as a StatusEvent on the aggregate. On
// failure nothing is mutated; the caller records the attempted status in the
// audit trail separately so history reflects intent.
func (j *Job) UpdateStatus(newStatus Status, actor Actor, location *kernel.GeoPoint, note string) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	if !actor.Role.CanSetStatus(newStatus) {
		return errs.NewInvalidStateTransitionErrorWithCause(
			j.status.String(), newStatus.String(),
			fmt.Errorf("role %s may not set status %s", actor.Role, newStatus))
	}

	if !j.status.CanTransition(newStatus) {
		return errs.NewInvalidStateTransitionError(j.status.String(), newStatus.String())
	}

	now := time.Now().UTC()
	switch newStatus {
	case PickedUp:
		j.actualPickupAt = &now
	case Delivered:
		j.actualDeliveryAt = &now
		if j.actualPickupAt != nil {
			minutes := int(now.Sub(*j.actualPickupAt).Minutes())
			j.actualDurationMin = &minutes
		}
	}

	j.status = newStatus
	return j.recordEvent(newStatus, actor, location, note)
}

// Cancel moves a non-terminal job to cancelled. Only privileged roles may
// cancel. Cancelling a delivered or already-cancelled job is rejected:
// cancellation is an escape hatch for live jobs, not a way to unwind a
// completed delivery.
func (j *Job) Cancel(actor Actor, note string) error {
	if !actor.Role.IsPrivileged() {
		return errs.NewInvalidStateTransitionErrorWithCause(
			j.status.String(), Cancelled.String(),
			fmt.Errorf("role %s may not cancel jobs", actor.Role))
	}

	if j.status.IsTerminal() {
		return errs.NewInvalidStateTransitionError(j.status.String(), Cancelled.String())
	}

	j.status = Cancelled
	if note == "" {
		note = "job cancelled"
	}
	return j.recordEvent(Cancelled, actor, nil, note)
}

// TakeEvents drains and returns the status events accumulated since the last
// drain. Repositories call this when persisting the aggregate so that events
// land in the same transaction as the job mutation.
func (j *Job) TakeEvents() []StatusEvent {
	events := j.events
	j.events = nil
	return events
}

// quote resolves the job's pricing: explicit base price wins; otherwise the
// total is derived from the estimated distance, floored at MinTotalPrice.
func (j *Job) quote(basePrice float64, additional float64) (Pricing, error) {
	if basePrice > 0 {
		return NewPricing(basePrice, additional)
	}
	if j.estimatedDistanceKm != nil {
		return PricingFromDistance(*j.estimatedDistanceKm, additional)
	}
	return NewPricing(0, additional)
}

func (j *Job) recordEvent(status Status, actor Actor, location *kernel.GeoPoint, note string) error {
	event, err := NewStatusEvent(j.id, status, actor, location, note)
	if err != nil {
		return err
	}
	j.events = append(j.events, event)
	return nil
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("jobNumber")
	}
	j.number = number
	return nil
}

func (j *Job) setTrackingCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("trackingCode")
	}
	j.trackingCode = code
	return nil
}

func (j *Job) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	j.customerID = id
	return nil
}

func (j *Job) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	j.priority = priority
	return nil
}

func (j *Job) setPickup(pickup Place) error {
	if err := pickup.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickup", err)
	}
	j.pickup = pickup
	return nil
}

func (j *Job) setDelivery(delivery Place) error {
	if err := delivery.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delivery", err)
	}
	j.delivery = delivery
	return nil
}
