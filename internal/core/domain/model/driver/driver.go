package driver

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when creating a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")
)

// Driver is the aggregate root for a delivery driver: identity, availability,
// an optional vehicle reference, rolling performance counters and a
// verification flag. Only verified drivers are eligible for proximity queries.
//
// The aggregate validates availability transitions; the check against active
// jobs and the atomic claim/release writes live in the application and
// persistence layers, where job counts and row-level conditions are available.
type Driver struct {
	id           kernel.UUID
	userID       kernel.UUID
	name         string
	phone        string
	availability Availability
	vehicleID    *kernel.UUID
	totalJobs    int
	rating       float64
	earnings     float64
	verified     bool
	guard        guard.ConstructorGuard
}

// NewDriver creates a Driver in offline availability, unverified, with zeroed
// counters. Drivers go through verification before they can be dispatched.
func NewDriver(id kernel.UUID, userID kernel.UUID, name string, phone string) (*Driver, error) {
	d := &Driver{
		availability: Offline,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	d.phone = phone
	return d, nil
}

// RestoreDriver reconstructs a Driver from persistence.
func RestoreDriver(
	id kernel.UUID,
	userID kernel.UUID,
	name string,
	phone string,
	availability Availability,
	vehicleID *kernel.UUID,
	totalJobs int,
	rating float64,
	earnings float64,
	verified bool,
) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		d.setName(name),
		availability.Validate(),
	); err != nil {
		return nil, err
	}

	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return nil, err
		}
		d.vehicleID = vehicleID
	}

	d.phone = phone
	d.availability = availability
	d.totalJobs = totalJobs
	d.rating = rating
	d.earnings = earnings
	d.verified = verified

	return d, nil
}

// Validate ensures the Driver was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID { return d.id }

// UserID returns the linked user profile reference.
func (d *Driver) UserID() kernel.UUID { return d.userID }

// Name returns the driver's display name.
func (d *Driver) Name() string { return d.name }

// Phone returns the driver's contact phone.
func (d *Driver) Phone() string { return d.phone }

// Availability returns the driver's current duty state.
func (d *Driver) Availability() Availability { return d.availability }

// VehicleID returns the linked vehicle, or nil.
func (d *Driver) VehicleID() *kernel.UUID { return d.vehicleID }

// TotalJobs returns the number of completed deliveries.
func (d *Driver) TotalJobs() int { return d.totalJobs }

// Rating returns the driver's rolling rating.
func (d *Driver) Rating() float64 { return d.rating }

// Earnings returns the driver's accumulated earnings.
func (d *Driver) Earnings() float64 { return d.earnings }

// IsVerified reports whether the driver passed verification.
func (d *Driver) IsVerified() bool { return d.verified }

// Verify marks the driver as verified and eligible for dispatch.
func (d *Driver) Verify() {
	d.verified = true
}

// AssignVehicle links a vehicle to the driver.
func (d *Driver) AssignVehicle(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	d.vehicleID = &vehicleID
	return nil
}

// SetAvailability moves the driver to the target state. activeJobs is the
// number of jobs currently occupying the driver; any transition away from
// duty (that is, to any state other than busy) is refused while active jobs
// remain. The busy state itself is owned by the assignment flow and cannot
// be entered directly.
func (d *Driver) SetAvailability(target Availability, activeJobs int) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == Busy {
		return errs.NewValueIsInvalidErrorWithCause("availability",
			fmt.Errorf("busy is set by job assignment, not directly"))
	}

	if activeJobs > 0 {
		return errs.NewResourceConflictErrorWithCause("driver", d.id.String(),
			"cannot go offline with active jobs",
			fmt.Errorf("%d active jobs", activeJobs))
	}

	d.availability = target
	return nil
}

// MarkBusy claims the driver for an assignment. Only an available driver can
// be claimed; the persistence layer re-asserts this same condition atomically
// with a conditional update, so a lost race surfaces as ResourceConflict
// there even if this in-memory check passed.
func (d *Driver) MarkBusy() error {
	if d.availability != Available {
		return errs.NewResourceConflictError("driver", d.id.String(),
			fmt.Sprintf("not available (currently %s)", d.availability))
	}
	d.availability = Busy
	return nil
}

// Release returns a busy driver to available after a delivery completes or
// the occupying job is cancelled.
func (d *Driver) Release() error {
	if d.availability != Busy {
		return errs.NewResourceConflictError("driver", d.id.String(),
			fmt.Sprintf("not busy (currently %s)", d.availability))
	}
	d.availability = Available
	return nil
}

// RecordCompletedJob updates the rolling counters after a delivery.
func (d *Driver) RecordCompletedJob(earned float64) {
	d.totalJobs++
	if earned > 0 {
		d.earnings += earned
	}
}

// RecordRating folds a new rating into the rolling average.
func (d *Driver) RecordRating(value float64) error {
	if value < 1 || value > 5 {
		return errs.NewValueIsOutOfRangeError("rating", value, 1, 5)
	}

	// Rolling average over completed jobs; first rating stands alone.
	if d.totalJobs <= 1 || d.rating == 0 {
		d.rating = value
		return nil
	}
	d.rating = (d.rating*float64(d.totalJobs-1) + value) / float64(d.totalJobs)
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	d.userID = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}
