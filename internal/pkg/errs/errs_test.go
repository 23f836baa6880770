package errs_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("driverId", "123")

		assert.Equal(t, "driverId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("driverId", "123", cause)

		assert.Equal(t, "driverId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: driverId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("priority")

		assert.Equal(t, "priority", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: priority", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("priority", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: priority (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 120.0, -90.0, 90.0)

		assert.Equal(t, "latitude", err.ParamName)
		assert.Equal(t, 120.0, err.Value)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 120 is latitude, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("pickupAddress")

		assert.Equal(t, "pickupAddress", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: pickupAddress", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("pickupAddress", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: pickupAddress (cause: missing required field)", err.Error())
	})
}

func TestInvalidStateTransitionError(t *testing.T) {
	t.Run("NewInvalidStateTransitionError", func(t *testing.T) {
		err := errs.NewInvalidStateTransitionError("delivered", "picked_up")

		assert.Equal(t, "delivered", err.From)
		assert.Equal(t, "picked_up", err.To)
		require.NoError(t, err.Cause)
		assert.Equal(t, "invalid state transition: from delivered to picked_up", err.Error())
		assert.Equal(t, errs.ErrInvalidStateTransition, err.Unwrap())
	})

	t.Run("NewInvalidStateTransitionErrorWithCause", func(t *testing.T) {
		cause := errors.New("role driver may not set this status")
		err := errs.NewInvalidStateTransitionErrorWithCause("assigned", "cancelled", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"invalid state transition: from assigned to cancelled (cause: role driver may not set this status)",
			err.Error())
	})
}

func TestResourceConflictError(t *testing.T) {
	t.Run("NewResourceConflictError", func(t *testing.T) {
		err := errs.NewResourceConflictError("driver", "123", "not available")

		assert.Equal(t, "driver", err.Resource)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "resource conflict: driver 123: not available", err.Error())
		assert.Equal(t, errs.ErrResourceConflict, err.Unwrap())
	})

	t.Run("NewResourceConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("2 active jobs")
		err := errs.NewResourceConflictErrorWithCause("driver", "123", "cannot go offline with active jobs", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"resource conflict: driver 123: cannot go offline with active jobs (cause: 2 active jobs)",
			err.Error())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid state transition", errs.ErrInvalidStateTransition.Error())
		assert.Equal(t, "resource conflict", errs.ErrResourceConflict.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("jobId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("status"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("longitude", 200.0, -180.0, 180.0), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("deliveryAddress"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewInvalidStateTransitionError("pending", "delivered"), errs.ErrInvalidStateTransition)
		require.ErrorIs(t, errs.NewResourceConflictError("driver", "123", "busy"), errs.ErrResourceConflict)
	})
}
