package job

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrPlaceIsNotConstructed is returned when using an improperly initialized Place.
var ErrPlaceIsNotConstructed = errs.NewValueIsRequiredError(
	"place must be created via NewPlace constructor")

// Place is a pickup or delivery location: a required free-text address with
// an optional validated coordinate. Jobs without coordinates are still valid;
// they are simply excluded from distance estimation and route sequencing.
type Place struct { //nolint:recvcheck //using for validation
	address string
	point   *kernel.GeoPoint
	guard   guard.ConstructorGuard
}

// NewPlace creates a Place. The address is required; point may be nil.
// A non-nil point must have been constructed via kernel.NewGeoPoint.
func NewPlace(address string, point *kernel.GeoPoint) (Place, error) {
	p := Place{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setAddress(address), p.setPoint(point)); err != nil {
		return Place{}, err
	}

	return p, nil
}

// Validate checks that the Place was constructed via NewPlace.
func (p Place) Validate() error {
	return p.guard.Validate(ErrPlaceIsNotConstructed)
}

// Address returns the free-text address.
func (p Place) Address() string {
	return p.address
}

// Point returns the coordinate, or nil when none was provided.
func (p Place) Point() *kernel.GeoPoint {
	return p.point
}

// HasPoint reports whether the place carries a coordinate.
func (p Place) HasPoint() bool {
	return p.point != nil
}

func (p *Place) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	p.address = address
	return nil
}

func (p *Place) setPoint(point *kernel.GeoPoint) error {
	if point == nil {
		return nil
	}
	if err := point.Validate(); err != nil {
		return err
	}

	p.point = point
	return nil
}

// Contact holds the optional contact details attached to a pickup or delivery
// stop. Both fields may be empty; a job stays reachable through the customer
// record either way.
type Contact struct {
	Name  string
	Phone string
}
