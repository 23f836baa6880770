package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/adapters/out/postgres/trackrepo"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&jobrepo.JobDTO{},
		&jobrepo.StatusEventDTO{},
		&driverrepo.DriverDTO{},
		&trackrepo.SampleDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE jobs, job_status_events, drivers, track_samples").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.JobRepository())
	suite.NotNil(uow1.DriverRepository())
	suite.NotNil(uow1.TrackRepository())
	suite.NotNil(uow2.JobRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	// Begin is idempotent.
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsWritesAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.newDriver("Rosa Mendes")
	suite.Require().NoError(uow.DriverRepository().Add(ctx, aggregate))
	jobAggregate := suite.newJob()
	suite.Require().NoError(uow.JobRepository().Add(ctx, jobAggregate))

	suite.Require().NoError(uow.Commit(ctx))

	// Visible through a fresh unit of work.
	fresh := suite.factory.Create()
	loadedDriver, err := fresh.DriverRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal("Rosa Mendes", loadedDriver.Name())
	loadedJob, err := fresh.JobRepository().Get(ctx, jobAggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(job.Pending, loadedJob.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.newDriver("Gone Driver")
	suite.Require().NoError(uow.DriverRepository().Add(ctx, aggregate))

	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err := fresh.DriverRepository().Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeferredRollbackAfterCommitIsHarmless() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.newDriver("Kept Driver")
	suite.Require().NoError(uow.DriverRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	// Handlers run `defer uow.Rollback(ctx)`; after a commit it must not
	// undo anything.
	err := uow.Rollback(ctx)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)

	fresh := suite.factory.Create()
	loaded, getErr := fresh.DriverRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(getErr)
	suite.Equal("Kept Driver", loaded.Name())
}

func (suite *UnitOfWorkIntegrationTestSuite) newDriver(name string) *driver.Driver {
	aggregate, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), name, "+1-555-0123")
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) newJob() *job.Job {
	pickup, err := job.NewPlace("500 Travis St, Houston", nil)
	suite.Require().NoError(err)
	delivery, err := job.NewPlace("900 Commerce St, Dallas", nil)
	suite.Require().NoError(err)
	actor, err := job.NewActor(kernel.NewUUID(), job.RoleDispatcher)
	suite.Require().NoError(err)

	id := kernel.NewUUID()
	aggregate, err := job.NewJob(job.NewJobParams{
		ID:           id,
		Number:       "JOB-" + id.String()[:8],
		TrackingCode: "TRK-" + id.String()[:8],
		CustomerID:   kernel.NewUUID(),
		Priority:     job.PriorityMedium,
		Pickup:       pickup,
		Delivery:     delivery,
		Actor:        actor,
	})
	suite.Require().NoError(err)
	return aggregate
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
