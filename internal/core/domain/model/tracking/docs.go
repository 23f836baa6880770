// Package tracking contains the location telemetry model: immutable samples
// of where a driver was at a point in time, kept for a bounded retention
// window and used to answer proximity queries.
package tracking
