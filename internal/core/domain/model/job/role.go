package job

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Role is the capacity in which an actor touches a job. Authentication and
// role resolution happen outside this core; callers arrive already verified.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer may create jobs but not drive their lifecycle.
	RoleCustomer

	// RoleDriver may set the en-route/arrived/picked-up/delivered statuses
	// of jobs assigned to them.
	RoleDriver

	// RoleDispatcher may set any status, including cancelled and on_hold.
	RoleDispatcher

	// RoleAdmin has the same lifecycle permissions as a dispatcher.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleCustomer:   "customer",
		RoleDriver:     "driver",
		RoleDispatcher: "dispatcher",
		RoleAdmin:      "admin",
	}
}

// ParseRole converts a wire name into a Role.
func ParseRole(s string) (Role, error) {
	for r, name := range getRoleStrings() {
		if name == s {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the Role is one of the defined values.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// CanSetStatus reports whether the role is permitted to set the target status.
// Drivers are limited to the execution statuses of their own trip; dispatchers
// and admins may set any status. The transition graph is enforced separately.
func (r Role) CanSetStatus(target Status) bool {
	switch r {
	case RoleDispatcher, RoleAdmin:
		return target.Validate() == nil
	case RoleDriver:
		switch target {
		case EnRoutePickup, ArrivedPickup, PickedUp, EnRouteDelivery, ArrivedDelivery, Delivered:
			return true
		default:
			return false
		}
	default:
		return false
	}
}

// IsPrivileged reports whether the role may cancel or hold jobs.
func (r Role) IsPrivileged() bool {
	return r == RoleDispatcher || r == RoleAdmin
}

// Actor identifies who performs an operation and in what capacity.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor creates an Actor, validating both the identifier and the role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}
