// Package guard implements the constructor-guard pattern used by value objects
// and commands throughout the application. Embedding a ConstructorGuard in a
// struct makes the zero value detectable, so objects that bypassed their
// constructor fail validation instead of carrying unchecked state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is provided for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed objects from zero values.
// The flag is only set by NewConstructorGuard, which constructors call; a
// struct literal created elsewhere keeps the zero value and fails Validate.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
// Call it inside the object's constructor:
//
//	func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
//	    p := GeoPoint{guard: guard.NewConstructorGuard()}
//	    ...
//	}
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed objects. For zero values it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
