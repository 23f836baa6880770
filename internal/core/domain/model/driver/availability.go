package driver

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Availability represents a driver's duty state.
//
// available and busy are managed by the dispatch flow: assignment claims a
// driver (available → busy) and a completed or cancelled delivery releases
// them. offline and break are set by the driver, but only while no active
// job occupies them.
type Availability int

const (
	// AvailabilityUnknown represents an invalid or undefined availability.
	AvailabilityUnknown Availability = iota

	// Available means the driver can be claimed for an assignment.
	Available

	// Busy means the driver is occupied by an active job.
	Busy

	// Offline means the driver is off duty.
	Offline

	// Break means the driver is temporarily unavailable.
	Break
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		Available: "available",
		Busy:      "busy",
		Offline:   "offline",
		Break:     "break",
	}
}

// ParseAvailability converts a wire name into an Availability.
func ParseAvailability(s string) (Availability, error) {
	for a, name := range getAvailabilityStrings() {
		if name == s {
			return a, nil
		}
	}
	return AvailabilityUnknown, errs.NewValueIsInvalidErrorWithCause("availability",
		fmt.Errorf("%q is not a valid availability", s))
}

// Validate checks that the Availability is one of the defined values.
func (a Availability) Validate() error {
	if _, ok := getAvailabilityStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("availability",
			fmt.Errorf("%d is not a valid availability", a))
	}
	return nil
}

// IsOnDuty reports whether the driver is working (available or busy) and
// should appear in proximity shortlists.
func (a Availability) IsOnDuty() bool {
	return a == Available || a == Busy
}

// String returns the wire name of the availability.
func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "unknown"
}
