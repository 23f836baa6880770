// Package driver contains the driver aggregate and its availability state.
// Availability is the contended resource of the dispatch core: assignment
// claims a driver (available → busy) and delivery releases them; both writes
// happen as conditional updates at the persistence layer so that concurrent
// dispatchers can never claim the same driver twice.
package driver
