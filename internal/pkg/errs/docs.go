// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the full error taxonomy of the dispatch core:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     validation failures rejected before any state change
//   - ObjectNotFoundError: a referenced job or driver is absent
//   - InvalidStateTransitionError: the requested status is not reachable
//     from the current state for the acting role
//   - ResourceConflictError: the operation lost a race for a contended
//     resource (e.g. a driver claimed by a concurrent assignment)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrResourceConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// Errors are always returned synchronously to the caller; nothing in this
// application retries a failed operation internally.
package errs
