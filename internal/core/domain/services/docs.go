// Package services provides domain services that coordinate logic spanning
// multiple aggregates.
//
// The package includes:
//   - RouteOptimizer: sequences a driver's jobs with a priority-weighted
//     nearest-neighbor heuristic
//
// Domain services hold no state of their own; they operate on aggregates
// passed in by the application layer.
package services
