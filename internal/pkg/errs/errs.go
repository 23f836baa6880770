package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used for classification with errors.Is.
// Each typed error below unwraps to exactly one of these.
var (
	// ErrValueIsRequired indicates a required value was missing.
	ErrValueIsRequired = errors.New("value is required")
	// ErrValueIsInvalid indicates a value was present but malformed.
	ErrValueIsInvalid = errors.New("value is invalid")
	// ErrValueIsOutOfRange indicates a value fell outside its permitted bounds.
	ErrValueIsOutOfRange = errors.New("value is out of range")
	// ErrObjectNotFound indicates a referenced object does not exist.
	ErrObjectNotFound = errors.New("object not found")
	// ErrInvalidStateTransition indicates the requested status is not reachable
	// from the current state for this actor.
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrResourceConflict indicates the operation lost a race for a contended
	// resource, such as a driver who is no longer available.
	ErrResourceConflict = errors.New("resource conflict")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing required value
// wrapping the underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a malformed value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for a malformed value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for a malformed value
// wrapping the underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates an error for a value outside [min, max].
func NewValueIsOutOfRangeError(paramName string, value any, minValue any, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates an error for a value outside [min, max]
// wrapping the underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value any, minValue any, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %s)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports a lookup for an object that does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for a missing object.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an error for a missing object
// wrapping the underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidStateTransitionError reports a status change that the lifecycle
// state machine does not permit, either because no edge exists between the
// two statuses or because the acting role may not set the target status.
type InvalidStateTransitionError struct {
	From  string
	To    string
	Cause error
}

// NewInvalidStateTransitionError creates an error for a forbidden status change.
func NewInvalidStateTransitionError(from string, to string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{From: from, To: to}
}

// NewInvalidStateTransitionErrorWithCause creates an error for a forbidden
// status change wrapping the underlying cause.
func NewInvalidStateTransitionErrorWithCause(from string, to string, cause error) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidStateTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: from %s to %s (cause: %s)", ErrInvalidStateTransition, e.From, e.To, e.Cause)
	}
	return fmt.Sprintf("%s: from %s to %s", ErrInvalidStateTransition, e.From, e.To)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// ResourceConflictError reports an operation that lost a race for a contended
// resource. The conflict is detected atomically (conditional update verified
// by affected-row count), never by a separate read followed by a write.
type ResourceConflictError struct {
	Resource string
	ID       any
	Reason   string
	Cause    error
}

// NewResourceConflictError creates an error for a contended resource.
func NewResourceConflictError(resource string, id any, reason string) *ResourceConflictError {
	return &ResourceConflictError{Resource: resource, ID: id, Reason: reason}
}

// NewResourceConflictErrorWithCause creates an error for a contended resource
// wrapping the underlying cause.
func NewResourceConflictErrorWithCause(resource string, id any, reason string, cause error) *ResourceConflictError {
	return &ResourceConflictError{Resource: resource, ID: id, Reason: reason, Cause: cause}
}

func (e *ResourceConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s: %s", ErrResourceConflict, e.Resource, sanitize(e.ID), e.Reason)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %s)", e.Cause)
	}
	return msg
}

func (e *ResourceConflictError) Unwrap() error {
	return ErrResourceConflict
}
