package kernel

import "math"

const (
	// DefaultAvgSpeedKmh is the assumed average travel speed for estimates.
	DefaultAvgSpeedKmh = 50.0

	// trafficBufferMinPerKm pads delivery estimates for stops and traffic.
	trafficBufferMinPerKm = 2.0
)

// TravelMinutes returns the pure driving time for a distance at the given
// average speed, rounded up to whole minutes. A non-positive speed falls back
// to DefaultAvgSpeedKmh.
func TravelMinutes(distanceKm float64, avgSpeedKmh float64) int {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = DefaultAvgSpeedKmh
	}

	return int(math.Ceil(distanceKm / avgSpeedKmh * 60))
}

// EstimateDurationMin returns the expected delivery duration in minutes:
// driving time at the given average speed plus a buffer of 2 minutes per
// kilometer to account for stops and traffic.
func EstimateDurationMin(distanceKm float64, avgSpeedKmh float64) int {
	return TravelMinutes(distanceKm, avgSpeedKmh) + int(math.Ceil(distanceKm*trafficBufferMinPerKm))
}
