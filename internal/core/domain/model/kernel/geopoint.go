package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. Points must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a WGS84 coordinate pair with validated bounds.
// It is an immutable value object; the zero value is invalid and fails
// Validate, so always construct instances through NewGeoPoint.
//
// Example:
//
//	houston, err := kernel.NewGeoPoint(29.7604, -95.3698)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(houston) // GeoPoint(29.760400,-95.369800)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in degrees.
// Latitude must be within [-90, 90] and longitude within [-180, 180];
// each bound is validated independently and violations are joined.
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Origin returns the (0,0) point used as the default route start when the
// caller supplies none.
func Origin() GeoPoint {
	p, _ := NewGeoPoint(0, 0)
	return p
}

// Validate checks that the GeoPoint was constructed via NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p == other, nil
}

// DistanceKm computes the great-circle distance to other using the haversine
// formula on a sphere of radius 6371 km, rounded to 2 decimal places.
// The result is symmetric and zero for identical points.
//
// Example:
//
//	houston, _ := kernel.NewGeoPoint(29.7604, -95.3698)
//	dallas, _ := kernel.NewGeoPoint(32.7767, -96.7970)
//	km, _ := houston.DistanceKm(dallas) // ≈ 362
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	latA := degreesToRadians(p.latitude)
	latB := degreesToRadians(other.latitude)
	dLat := degreesToRadians(other.latitude - p.latitude)
	dLon := degreesToRadians(other.longitude - p.longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return roundKm(earthRadiusKm * c), nil
}

// setLatitude sets the latitude with bounds validation.
// Note: pointer receiver on a value-object setter is intentional; the private
// setters self-encapsulate validation during construction.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with bounds validation.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// roundKm rounds distances to 2 decimal places (10 m resolution).
func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
