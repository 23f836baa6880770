package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

func newRouteJob(t *testing.T, priority job.Priority, pickup, delivery *kernel.GeoPoint) *job.Job {
	t.Helper()

	pickupPlace, err := job.NewPlace("100 Main St", pickup)
	require.NoError(t, err)
	deliveryPlace, err := job.NewPlace("200 Oak Ave", delivery)
	require.NoError(t, err)

	actor, err := job.NewActor(kernel.NewUUID(), job.RoleDispatcher)
	require.NoError(t, err)

	id := kernel.NewUUID()
	j, err := job.NewJob(job.NewJobParams{
		ID:           id,
		Number:       "JOB-" + id.String()[:8],
		TrackingCode: "TRK-" + id.String()[:8],
		CustomerID:   kernel.NewUUID(),
		Priority:     priority,
		Pickup:       pickupPlace,
		Delivery:     deliveryPlace,
		Actor:        actor,
	})
	require.NoError(t, err)
	return j
}

func mustPoint(t *testing.T, lat, lon float64) *kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return &p
}

func TestRouteOptimizer_Optimize(t *testing.T) {
	optimizer := services.NewRouteOptimizer()

	t.Run("should visit jobs nearest first when priorities are equal", func(t *testing.T) {
		// Three jobs along the equator, input order far to near.
		far := newRouteJob(t, job.PriorityMedium, mustPoint(t, 0, 3), mustPoint(t, 0, 3.1))
		mid := newRouteJob(t, job.PriorityMedium, mustPoint(t, 0, 2), mustPoint(t, 0, 2.1))
		near := newRouteJob(t, job.PriorityMedium, mustPoint(t, 0, 1), mustPoint(t, 0, 1.1))

		plan, err := optimizer.Optimize(context.Background(), nil, []*job.Job{far, mid, near})

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{near.ID(), mid.ID(), far.ID()}, plan.JobOrder)
		assert.Len(t, plan.Waypoints, 6)
	})

	t.Run("should pull urgent jobs forward past nearer routine jobs", func(t *testing.T) {
		// The routine job sits at 1° (~111 km), the urgent one at 2° (~222 km).
		// Weighted: 222 * 0.5 = 111 vs 111 * 1.0; a tie would keep input
		// order, so place the urgent job slightly inside the break-even.
		routine := newRouteJob(t, job.PriorityMedium, mustPoint(t, 0, 1), nil)
		urgent := newRouteJob(t, job.PriorityUrgent, mustPoint(t, 0, 1.9), nil)

		plan, err := optimizer.Optimize(context.Background(), nil,
			[]*job.Job{routine, urgent})

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{urgent.ID(), routine.ID()}, plan.JobOrder)
	})

	t.Run("should keep input order on weighted ties", func(t *testing.T) {
		first := newRouteJob(t, job.PriorityMedium, mustPoint(t, 0, 1), nil)
		second := newRouteJob(t, job.PriorityMedium, mustPoint(t, 1, 0), nil)

		plan, err := optimizer.Optimize(context.Background(), nil,
			[]*job.Job{first, second})

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{first.ID(), second.ID()}, plan.JobOrder)
	})

	t.Run("should exclude jobs without pickup coordinates", func(t *testing.T) {
		routable := newRouteJob(t, job.PriorityMedium, mustPoint(t, 0, 1), mustPoint(t, 0, 1.1))
		unroutable := newRouteJob(t, job.PriorityUrgent, nil, mustPoint(t, 0, 0.5))

		plan, err := optimizer.Optimize(context.Background(), nil,
			[]*job.Job{unroutable, routable})

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{routable.ID()}, plan.JobOrder)
		assert.Len(t, plan.Waypoints, 2)
	})

	t.Run("should start from the provided location", func(t *testing.T) {
		// From (0, 2.5), the job at 3° is closer than the job at 1°.
		a := newRouteJob(t, job.PriorityMedium, mustPoint(t, 0, 1), nil)
		b := newRouteJob(t, job.PriorityMedium, mustPoint(t, 0, 3), nil)
		start := mustPoint(t, 0, 2.5)

		plan, err := optimizer.Optimize(context.Background(), start, []*job.Job{a, b})

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{b.ID(), a.ID()}, plan.JobOrder)
	})

	t.Run("should continue from delivery point when present", func(t *testing.T) {
		// Job A delivers at (0, 5); from there job C (0, 5.5) beats job B (0, 2).
		a := newRouteJob(t, job.PriorityMedium, mustPoint(t, 0, 1), mustPoint(t, 0, 5))
		b := newRouteJob(t, job.PriorityMedium, mustPoint(t, 0, 2), nil)
		c := newRouteJob(t, job.PriorityMedium, mustPoint(t, 0, 5.5), nil)

		plan, err := optimizer.Optimize(context.Background(), nil, []*job.Job{a, b, c})

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{a.ID(), c.ID(), b.ID()}, plan.JobOrder)
	})

	t.Run("should total unweighted distances and estimate duration", func(t *testing.T) {
		// Single urgent job: pickup ~111.19 km out, delivery another ~11.12 km.
		// The urgency multiplier affects selection only, never the totals.
		j := newRouteJob(t, job.PriorityUrgent, mustPoint(t, 0, 1), mustPoint(t, 0, 1.1))

		plan, err := optimizer.Optimize(context.Background(), nil, []*job.Job{j})

		require.NoError(t, err)
		assert.InDelta(t, 122.31, plan.TotalDistanceKm, 0.5)
		assert.Equal(t, kernel.TravelMinutes(plan.TotalDistanceKm, 50), plan.TotalDurationMin)
	})

	t.Run("should return empty plan for no routable jobs", func(t *testing.T) {
		plan, err := optimizer.Optimize(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, plan.JobOrder)
		assert.Empty(t, plan.Waypoints)
		assert.Zero(t, plan.TotalDistanceKm)
		assert.Zero(t, plan.TotalDurationMin)
	})

	t.Run("should stop on context cancellation", func(t *testing.T) {
		jobs := make([]*job.Job, 0, 10)
		for i := range 10 {
			jobs = append(jobs, newRouteJob(t, job.PriorityMedium,
				mustPoint(t, 0, float64(i+1)), nil))
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := optimizer.Optimize(ctx, nil, jobs)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func BenchmarkRouteOptimizer_Optimize(b *testing.B) {
	optimizer := services.NewRouteOptimizer()
	jobs := make([]*job.Job, 0, 100)
	for i := range 100 {
		lat := float64(i%90) / 2
		lon := float64((i*7)%180) / 2
		point, err := kernel.NewGeoPoint(lat, lon)
		if err != nil {
			b.Fatal(err)
		}
		pickupPlace, err := job.NewPlace(fmt.Sprintf("stop %d", i), &point)
		if err != nil {
			b.Fatal(err)
		}
		deliveryPlace, err := job.NewPlace("depot", nil)
		if err != nil {
			b.Fatal(err)
		}
		actor, err := job.NewActor(kernel.NewUUID(), job.RoleDispatcher)
		if err != nil {
			b.Fatal(err)
		}
		id := kernel.NewUUID()
		j, err := job.NewJob(job.NewJobParams{
			ID:           id,
			Number:       fmt.Sprintf("JOB-%03d", i),
			TrackingCode: fmt.Sprintf("TRK-%03d", i),
			CustomerID:   kernel.NewUUID(),
			Pickup:       pickupPlace,
			Delivery:     deliveryPlace,
			Actor:        actor,
		})
		if err != nil {
			b.Fatal(err)
		}
		jobs = append(jobs, j)
	}

	b.ResetTimer()
	for range b.N {
		if _, err := optimizer.Optimize(context.Background(), nil, jobs); err != nil {
			b.Fatal(err)
		}
	}
}
