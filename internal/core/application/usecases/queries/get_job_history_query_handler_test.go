package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

type GetJobHistoryQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *jobrepo.GormJobRepository
	handler    queries.GetJobHistoryQueryHandler
}

func (suite *GetJobHistoryQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&jobrepo.JobDTO{}, &jobrepo.StatusEventDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetJobHistoryQueryHandler(db)
}

func (suite *GetJobHistoryQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE jobs, job_status_events").Error)
	suite.repository = jobrepo.NewGormJobRepository(suite.db, noopTracker{})
}

func (suite *GetJobHistoryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetJobHistoryQueryHandlerTestSuite) createJob() *job.Job {
	pickup, err := job.NewPlace("800 Bagby St, Houston", nil)
	suite.Require().NoError(err)
	delivery, err := job.NewPlace("1500 Marilla St, Dallas", nil)
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

func (suite *GetJobHistoryQueryHandlerTestSuite) TestHandle_ReturnsEventsInChronologicalOrder() {
	ctx := context.Background()
	aggregate := suite.createJob()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	driverID := kernel.NewUUID()
	dispatcher, err := job.NewActor(kernel.NewUUID(), job.RoleDispatcher)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.Assign(driverID, dispatcher))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	driverActor, err := job.NewActor(driverID, job.RoleDriver)
	suite.Require().NoError(err)
	location, err := kernel.NewGeoPoint(29.7604, -95.3698)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.UpdateStatus(job.EnRoutePickup, driverActor, &location, "left the depot"))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	query, err := queries.NewGetJobHistoryQuery(aggregate.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(job.Pending.String(), result[0].Status)
	suite.Equal(job.Assigned.String(), result[1].Status)
	suite.Equal(job.EnRoutePickup.String(), result[2].Status)

	suite.Equal(job.RoleDriver.String(), result[2].ActorRole)
	suite.Equal(driverID, result[2].ActorID)
	suite.Equal("left the depot", result[2].Note)
	suite.Require().NotNil(result[2].Latitude)
	suite.InDelta(29.7604, *result[2].Latitude, 1e-6)

	suite.Nil(result[0].Latitude)
	suite.True(result[0].OccurredAt.Before(result[2].OccurredAt) ||
		result[0].OccurredAt.Equal(result[2].OccurredAt))
}

func (suite *GetJobHistoryQueryHandlerTestSuite) TestHandle_UnknownJob() {
	query, err := queries.NewGetJobHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(result)
}

func (suite *GetJobHistoryQueryHandlerTestSuite) TestHandle_JobWithOnlyCreationEvent() {
	ctx := context.Background()
	aggregate := suite.createJob()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	query, err := queries.NewGetJobHistoryQuery(aggregate.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(job.Pending.String(), result[0].Status)
}

func (suite *GetJobHistoryQueryHandlerTestSuite) TestHandle_InvalidQuery() {
	invalid := queries.GetJobHistoryQuery{}

	result, err := suite.handler.Handle(context.Background(), invalid)

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestGetJobHistoryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetJobHistoryQueryHandlerTestSuite))
}
