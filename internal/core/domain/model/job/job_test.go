package job_test

import (
	"testing"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(t *testing.T, lat, lon float64) *kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return &p
}

func place(t *testing.T, address string, pt *kernel.GeoPoint) job.Place {
	t.Helper()
	p, err := job.NewPlace(address, pt)
	require.NoError(t, err)
	return p
}

func dispatcher(t *testing.T) job.Actor {
	t.Helper()
	a, err := job.NewActor(kernel.NewUUID(), job.RoleDispatcher)
	require.NoError(t, err)
	return a
}

func driverActor(t *testing.T) job.Actor {
	t.Helper()
	a, err := job.NewActor(kernel.NewUUID(), job.RoleDriver)
	require.NoError(t, err)
	return a
}

func validParams(t *testing.T) job.NewJobParams {
	t.Helper()
	return job.NewJobParams{
		ID:           kernel.NewUUID(),
		Number:       "JOB-20260831-0001",
		TrackingCode: "TRK-A1B2C3",
		CustomerID:   kernel.NewUUID(),
		Pickup:       place(t, "800 Congress Ave, Houston", point(t, 29.7604, -95.3698)),
		Delivery:     place(t, "1500 Marilla St, Dallas", point(t, 32.7767, -96.7970)),
		Actor:        dispatcher(t),
	}
}

func TestNewJob(t *testing.T) {
	t.Run("creates a pending job with estimate and derived price", func(t *testing.T) {
		j, err := job.NewJob(validParams(t))
		require.NoError(t, err)

		assert.Equal(t, job.Pending, j.Status())
		assert.Equal(t, job.DefaultPriority, j.Priority())
		assert.Nil(t, j.DriverID())
		require.NotNil(t, j.EstimatedDistanceKm())
		assert.InDelta(t, 362, *j.EstimatedDistanceKm(), 2)
		require.NotNil(t, j.EstimatedDurationMin())

		events := j.TakeEvents()
		require.Len(t, events, 1)
		assert.Equal(t, job.Pending, events[0].Status())
		assert.Equal(t, j.ID(), events[0].JobID())
	})

	t.Run("pricing derives from distance when no base price given", func(t *testing.T) {
		// Two points almost exactly 100 km apart on the equator:
		// one degree of longitude at the equator is ~111.19 km, so use
		// a fraction that lands on 100.00 km after rounding.
		p := validParams(t)
		p.Pickup = place(t, "origin", point(t, 0, 0))
		p.Delivery = place(t, "east", point(t, 0, 0.899321))

		j, err := job.NewJob(p)
		require.NoError(t, err)

		require.NotNil(t, j.EstimatedDistanceKm())
		assert.InDelta(t, 100.0, *j.EstimatedDistanceKm(), 0.01)
		assert.InDelta(t, 500.0, j.Pricing().Total(), 0.1)
	})

	t.Run("short trips hit the price floor", func(t *testing.T) {
		p := validParams(t)
		p.Pickup = place(t, "origin", point(t, 0, 0))
		p.Delivery = place(t, "nearby", point(t, 0, 0.0449660)) // ≈5 km

		j, err := job.NewJob(p)
		require.NoError(t, err)

		assert.InDelta(t, 5.0, *j.EstimatedDistanceKm(), 0.01)
		assert.Equal(t, 50.0, j.Pricing().Total())
	})

	t.Run("explicit base price wins over derivation", func(t *testing.T) {
		p := validParams(t)
		p.BasePrice = 120
		p.AdditionalCharges = 30

		j, err := job.NewJob(p)
		require.NoError(t, err)

		assert.Equal(t, 120.0, j.Pricing().Base())
		assert.Equal(t, 150.0, j.Pricing().Total())
	})

	t.Run("no coordinates means no estimate", func(t *testing.T) {
		p := validParams(t)
		p.Pickup = place(t, "somewhere", nil)
		p.Delivery = place(t, "elsewhere", nil)

		j, err := job.NewJob(p)
		require.NoError(t, err)

		assert.Nil(t, j.EstimatedDistanceKm())
		assert.Nil(t, j.EstimatedDurationMin())
	})

	t.Run("missing required fields are rejected", func(t *testing.T) {
		p := validParams(t)
		p.Number = ""
		_, err := job.NewJob(p)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		p = validParams(t)
		p.Pickup = job.Place{}
		_, err = job.NewJob(p)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		p = validParams(t)
		p.CustomerID = kernel.UUID{}
		_, err = job.NewJob(p)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("coordinates validated independently", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(95, 10)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestJobAssign(t *testing.T) {
	t.Run("pending job accepts a driver", func(t *testing.T) {
		j, err := job.NewJob(validParams(t))
		require.NoError(t, err)
		j.TakeEvents()

		driverID := kernel.NewUUID()
		require.NoError(t, j.Assign(driverID, dispatcher(t)))

		assert.Equal(t, job.Assigned, j.Status())
		require.NotNil(t, j.DriverID())
		assert.True(t, driverID.IsEqual(*j.DriverID()))

		events := j.TakeEvents()
		require.Len(t, events, 1)
		assert.Equal(t, job.Assigned, events[0].Status())
	})

	t.Run("non-pending job rejects assignment", func(t *testing.T) {
		j, err := job.NewJob(validParams(t))
		require.NoError(t, err)
		require.NoError(t, j.Assign(kernel.NewUUID(), dispatcher(t)))

		err = j.Assign(kernel.NewUUID(), dispatcher(t))
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestJobUpdateStatus(t *testing.T) {
	assignedJob := func(t *testing.T) *job.Job {
		t.Helper()
		j, err := job.NewJob(validParams(t))
		require.NoError(t, err)
		require.NoError(t, j.Assign(kernel.NewUUID(), dispatcher(t)))
		j.TakeEvents()
		return j
	}

	t.Run("driver walks the full trip", func(t *testing.T) {
		j := assignedJob(t)
		actor := driverActor(t)

		for _, s := range []job.Status{
			job.EnRoutePickup, job.ArrivedPickup, job.PickedUp,
			job.EnRouteDelivery, job.ArrivedDelivery, job.Delivered,
		} {
			require.NoError(t, j.UpdateStatus(s, actor, nil, ""))
		}

		assert.Equal(t, job.Delivered, j.Status())
		assert.NotNil(t, j.ActualPickupAt())
		assert.NotNil(t, j.ActualDeliveryAt())
		assert.NotNil(t, j.ActualDurationMin())
		assert.Len(t, j.TakeEvents(), 6)
	})

	t.Run("picked_up stamps actual pickup time", func(t *testing.T) {
		j := assignedJob(t)
		actor := driverActor(t)

		require.NoError(t, j.UpdateStatus(job.EnRoutePickup, actor, nil, ""))
		require.NoError(t, j.UpdateStatus(job.ArrivedPickup, actor, nil, ""))
		assert.Nil(t, j.ActualPickupAt())

		require.NoError(t, j.UpdateStatus(job.PickedUp, actor, nil, ""))
		assert.NotNil(t, j.ActualPickupAt())
		assert.Nil(t, j.ActualDeliveryAt())
	})

	t.Run("driver cannot cancel or hold", func(t *testing.T) {
		j := assignedJob(t)
		actor := driverActor(t)

		err := j.UpdateStatus(job.Cancelled, actor, nil, "")
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)

		err = j.UpdateStatus(job.OnHold, actor, nil, "")
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("graph is enforced even for dispatchers", func(t *testing.T) {
		j := assignedJob(t)

		err := j.UpdateStatus(job.Delivered, dispatcher(t), nil, "")
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, job.Assigned, j.Status())
	})

	t.Run("hold and resume", func(t *testing.T) {
		j := assignedJob(t)
		d := dispatcher(t)

		require.NoError(t, j.UpdateStatus(job.OnHold, d, nil, "weather"))
		require.NoError(t, j.UpdateStatus(job.Assigned, d, nil, "resuming"))
		assert.Equal(t, job.Assigned, j.Status())
	})

	t.Run("status location is recorded on the event", func(t *testing.T) {
		j := assignedJob(t)
		loc := point(t, 29.8, -95.4)

		require.NoError(t, j.UpdateStatus(job.EnRoutePickup, driverActor(t), loc, "on my way"))

		events := j.TakeEvents()
		require.Len(t, events, 1)
		require.NotNil(t, events[0].Location())
		assert.Equal(t, "on my way", events[0].Note())
	})
}

func TestJobCancel(t *testing.T) {
	t.Run("privileged actor cancels a live job", func(t *testing.T) {
		j, err := job.NewJob(validParams(t))
		require.NoError(t, err)
		j.TakeEvents()

		require.NoError(t, j.Cancel(dispatcher(t), "customer withdrew"))
		assert.Equal(t, job.Cancelled, j.Status())

		events := j.TakeEvents()
		require.Len(t, events, 1)
		assert.Equal(t, job.Cancelled, events[0].Status())
	})

	t.Run("delivered jobs cannot be cancelled", func(t *testing.T) {
		j, err := job.NewJob(validParams(t))
		require.NoError(t, err)
		require.NoError(t, j.Assign(kernel.NewUUID(), dispatcher(t)))
		actor := driverActor(t)
		for _, s := range []job.Status{
			job.EnRoutePickup, job.ArrivedPickup, job.PickedUp,
			job.EnRouteDelivery, job.ArrivedDelivery, job.Delivered,
		} {
			require.NoError(t, j.UpdateStatus(s, actor, nil, ""))
		}

		err = j.Cancel(dispatcher(t), "")
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, job.Delivered, j.Status())
	})

	t.Run("driver cannot cancel", func(t *testing.T) {
		j, err := job.NewJob(validParams(t))
		require.NoError(t, err)

		err = j.Cancel(driverActor(t), "")
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestJobIsActive(t *testing.T) {
	j, err := job.NewJob(validParams(t))
	require.NoError(t, err)
	assert.False(t, j.IsActive(), "pending jobs do not occupy a driver")

	require.NoError(t, j.Assign(kernel.NewUUID(), dispatcher(t)))
	assert.True(t, j.IsActive())

	actor := driverActor(t)
	for _, tc := range []struct {
		status job.Status
		active bool
	}{
		{job.EnRoutePickup, true},
		{job.ArrivedPickup, false},
		{job.PickedUp, true},
		{job.EnRouteDelivery, true},
		{job.ArrivedDelivery, false},
		{job.Delivered, false},
	} {
		require.NoError(t, j.UpdateStatus(tc.status, actor, nil, ""))
		assert.Equal(t, tc.active, j.IsActive(), "status %s", tc.status)
	}
}

func TestRestoreJob(t *testing.T) {
	t.Run("round trip preserves state and records no events", func(t *testing.T) {
		original, err := job.NewJob(validParams(t))
		require.NoError(t, err)
		require.NoError(t, original.Assign(kernel.NewUUID(), dispatcher(t)))
		original.TakeEvents()

		restored, err := job.RestoreJob(
			original.ID(), original.Number(), original.TrackingCode(),
			original.CustomerID(), original.DriverID(),
			original.Status(), original.Priority(),
			original.Pickup(), original.Delivery(),
			original.PickupContact(), original.DeliveryContact(),
			original.ScheduledPickupAt(), original.ScheduledDeliveryAt(),
			original.ActualPickupAt(), original.ActualDeliveryAt(),
			original.EstimatedDistanceKm(), original.EstimatedDurationMin(),
			original.ActualDistanceKm(), original.ActualDurationMin(),
			original.Pricing(),
		)
		require.NoError(t, err)

		assert.True(t, original.ID().IsEqual(restored.ID()))
		assert.Equal(t, original.Status(), restored.Status())
		assert.Equal(t, original.Pricing().Total(), restored.Pricing().Total())
		assert.Empty(t, restored.TakeEvents())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var j job.Job
		require.ErrorIs(t, j.Validate(), job.ErrJobIsNotConstructed)
	})
}
