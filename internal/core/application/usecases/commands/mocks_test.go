package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/ports"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetAllPending(ctx context.Context) ([]*job.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int, error) {
	args := m.Called(ctx, driverID)
	return args.Int(0), args.Error(1)
}

func (m *MockJobRepository) GetHistory(ctx context.Context, jobID kernel.UUID) ([]job.StatusEvent, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]job.StatusEvent), args.Error(1)
}

func (m *MockJobRepository) AppendEvent(ctx context.Context, event job.StatusEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) ClaimForAssignment(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDriverRepository) ReleaseFromAssignment(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDriverRepository) CompareAndSetAvailability(
	ctx context.Context, id kernel.UUID, from, to driver.Availability,
) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

type MockTrackRepository struct{ mock.Mock }

func (m *MockTrackRepository) Add(ctx context.Context, sample *tracking.Sample) error {
	args := m.Called(ctx, sample)
	return args.Error(0)
}

func (m *MockTrackRepository) GetLatest(ctx context.Context, driverID kernel.UUID, after time.Time) (*tracking.Sample, error) {
	args := m.Called(ctx, driverID, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Sample), args.Error(1)
}

func (m *MockTrackRepository) GetRecent(ctx context.Context, driverID kernel.UUID, after time.Time) ([]*tracking.Sample, error) {
	args := m.Called(ctx, driverID, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tracking.Sample), args.Error(1)
}

func (m *MockTrackRepository) PruneDriverOlderThan(ctx context.Context, driverID kernel.UUID, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, driverID, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTrackRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) TrackRepository() ports.TrackRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockJobUoWFactory struct{ mock.Mock }

func (m *MockJobUoWFactory) Create() commands.JobUoW {
	args := m.Called()
	return args.Get(0).(commands.JobUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockTrackUoWFactory struct{ mock.Mock }

func (m *MockTrackUoWFactory) Create() commands.TrackUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackUoW)
}

type MockDriverIndex struct{ mock.Mock }

func (m *MockDriverIndex) Upsert(ctx context.Context, driverID kernel.UUID, point kernel.GeoPoint) error {
	args := m.Called(ctx, driverID, point)
	return args.Error(0)
}

func (m *MockDriverIndex) Remove(ctx context.Context, driverID kernel.UUID) error {
	args := m.Called(ctx, driverID)
	return args.Error(0)
}

func (m *MockDriverIndex) Near(ctx context.Context, center kernel.GeoPoint, radiusKm float64) ([]kernel.UUID, error) {
	args := m.Called(ctx, center, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}
