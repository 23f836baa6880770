package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery job.
//
// The transition graph is a linear progression:
//
//	pending → assigned → en_route_pickup → arrived_pickup → picked_up
//	        → en_route_delivery → arrived_delivery → delivered
//
// plus two escapes reachable from every non-terminal status: cancelled
// (terminal) and on_hold. A job on hold may resume to any non-terminal
// status or be cancelled. delivered and cancelled are terminal; no further
// transitions are defined from them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a newly created job awaiting assignment.
	Pending

	// Assigned indicates a driver has been assigned to the job.
	Assigned

	// EnRoutePickup indicates the driver is traveling to the pickup location.
	EnRoutePickup

	// ArrivedPickup indicates the driver has arrived at the pickup location.
	ArrivedPickup

	// PickedUp indicates the cargo is on board; the actual pickup time is stamped.
	PickedUp

	// EnRouteDelivery indicates the driver is traveling to the delivery location.
	EnRouteDelivery

	// ArrivedDelivery indicates the driver has arrived at the delivery location.
	ArrivedDelivery

	// Delivered is the successful terminal status; the actual delivery time is
	// stamped and the driver is released back to available.
	Delivered

	// Cancelled is the terminal status set by a privileged actor.
	Cancelled

	// OnHold pauses a job; it can be re-entered and resumed.
	OnHold
)

// getStatusStrings returns the wire names for every Status value,
// matching the external interface exactly (lowercase snake case).
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Pending:         "pending",
		Assigned:        "assigned",
		EnRoutePickup:   "en_route_pickup",
		ArrivedPickup:   "arrived_pickup",
		PickedUp:        "picked_up",
		EnRouteDelivery: "en_route_delivery",
		ArrivedDelivery: "arrived_delivery",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
		OnHold:          "on_hold",
	}
}

// successor returns the single next status in the linear progression,
// or Unknown when the status has no linear successor.
func (s Status) successor() Status {
	switch s {
	case Pending:
		return Assigned
	case Assigned:
		return EnRoutePickup
	case EnRoutePickup:
		return ArrivedPickup
	case ArrivedPickup:
		return PickedUp
	case PickedUp:
		return EnRouteDelivery
	case EnRouteDelivery:
		return ArrivedDelivery
	case ArrivedDelivery:
		return Delivered
	default:
		return Unknown
	}
}

// ParseStatus converts a wire name into a Status.
// Returns an error for unknown names and for "unknown" itself.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid job status", s))
}

// Validate checks that the Status is one of the defined lifecycle values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid job status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid job status", s))
	}
	return nil
}

// String returns the wire name of the status.
// Implements fmt.Stringer; safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are defined from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransition reports whether the lifecycle graph has an edge from s to target.
// Role permissions are checked separately; this is the pure graph.
func (s Status) CanTransition(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	if s.IsTerminal() {
		return false
	}

	// Escapes available from every non-terminal status.
	if target == Cancelled || target == OnHold {
		return target != s
	}

	// A held job may resume to any non-terminal status.
	if s == OnHold {
		return !target.IsTerminal()
	}

	return s.successor() == target
}
