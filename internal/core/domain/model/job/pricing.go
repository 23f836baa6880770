package job

import (
	"dispatch/internal/pkg/errs"
)

const (
	// MinTotalPrice is the floor applied to distance-derived quotes.
	MinTotalPrice = 50.0

	// PricePerKm is the rate applied to the estimated distance when no
	// explicit base price is given.
	PricePerKm = 5.0
)

// Pricing holds the monetary breakdown of a job. The total is always
// base + additional; it is computed once at construction and never drifts.
type Pricing struct {
	base       float64
	additional float64
	total      float64
}

// NewPricing creates a Pricing from an explicit base price plus additional
// charges. Both components must be non-negative.
func NewPricing(base float64, additional float64) (Pricing, error) {
	if base < 0 {
		return Pricing{}, errs.NewValueIsInvalidError("basePrice")
	}
	if additional < 0 {
		return Pricing{}, errs.NewValueIsInvalidError("additionalCharges")
	}

	return Pricing{
		base:       base,
		additional: additional,
		total:      base + additional,
	}, nil
}

// PricingFromDistance derives a quote from the estimated trip distance:
// the base price is distance * PricePerKm, floored at MinTotalPrice.
// Additional charges are added on top of the floored base.
func PricingFromDistance(distanceKm float64, additional float64) (Pricing, error) {
	base := distanceKm * PricePerKm
	if base < MinTotalPrice {
		base = MinTotalPrice
	}
	return NewPricing(base, additional)
}

// Base returns the base price.
func (p Pricing) Base() float64 {
	return p.base
}

// Additional returns the additional charges.
func (p Pricing) Additional() float64 {
	return p.additional
}

// Total returns the computed total price.
func (p Pricing) Total() float64 {
	return p.total
}
