package commands_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func dispatcherActor(t *testing.T) job.Actor {
	t.Helper()
	actor, err := job.NewActor(kernel.NewUUID(), job.RoleDispatcher)
	require.NoError(t, err)
	return actor
}

func driverActor(t *testing.T, id kernel.UUID) job.Actor {
	t.Helper()
	actor, err := job.NewActor(id, job.RoleDriver)
	require.NoError(t, err)
	return actor
}

func newPendingJob(t *testing.T) *job.Job {
	t.Helper()

	pickupPoint, err := kernel.NewGeoPoint(29.7604, -95.3698)
	require.NoError(t, err)
	deliveryPoint, err := kernel.NewGeoPoint(29.8604, -95.4698)
	require.NoError(t, err)

	pickup, err := job.NewPlace("100 Main St", &pickupPoint)
	require.NoError(t, err)
	delivery, err := job.NewPlace("200 Oak Ave", &deliveryPoint)
	require.NoError(t, err)

	id := kernel.NewUUID()
	aggregate, err := job.NewJob(job.NewJobParams{
		ID:           id,
		Number:       "JOB-" + id.String()[:8],
		TrackingCode: "TRK-" + id.String()[:8],
		CustomerID:   kernel.NewUUID(),
		Pickup:       pickup,
		Delivery:     delivery,
		Actor:        dispatcherActor(t),
	})
	require.NoError(t, err)

	// Creation itself records the pending event; tests exercising later
	// transitions drain it so assertions see only their own events.
	aggregate.TakeEvents()
	return aggregate
}

func newAssignedJob(t *testing.T, driverID kernel.UUID) *job.Job {
	t.Helper()
	aggregate := newPendingJob(t)
	require.NoError(t, aggregate.Assign(driverID, dispatcherActor(t)))
	aggregate.TakeEvents()
	return aggregate
}

func newBusyDriver(t *testing.T) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), "Marcus Reed", "+1-555-0100")
	require.NoError(t, err)
	require.NoError(t, d.SetAvailability(driver.Available, 0))
	require.NoError(t, d.MarkBusy())
	return d
}
