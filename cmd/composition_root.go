package cmd

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"dispatch/internal/adapters/out/geo"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
)

// CompositionRoot wires adapters into use-case handlers.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	driverIndex ports.DriverIndex
	logger      *slog.Logger
}

// NewCompositionRoot builds the object graph. The spatial index is shared
// redis when REDIS_ADDR is configured, in-process R-tree otherwise.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var index ports.DriverIndex
	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		index = geo.NewRedisDriverIndex(client, "dispatch")
	} else {
		index = geo.NewRTreeDriverIndex()
	}

	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		driverIndex: index,
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateJobCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignJobCommandHandler() commands.AssignJobCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignJobCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateJobStatusCommandHandler() commands.UpdateJobStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateJobStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelJobCommandHandler() commands.CancelJobCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelJobCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() commands.SetDriverAvailabilityCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDriverAvailabilityCommandHandler(f, c.driverIndex)
}

func (c *CompositionRoot) CreateRecordDriverLocationCommandHandler() commands.RecordDriverLocationCommandHandler {
	var f commands.TrackUoWFactory = FuncTrackUoWFactory(func() commands.TrackUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordDriverLocationCommandHandler(f, c.driverIndex, c.config.LocationRetention)
}

func (c *CompositionRoot) CreatePruneLocationHistoryCommandHandler() commands.PruneLocationHistoryCommandHandler {
	var f commands.TrackUoWFactory = FuncTrackUoWFactory(func() commands.TrackUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPruneLocationHistoryCommandHandler(f)
}

func (c *CompositionRoot) CreateGetJobHistoryQueryHandler() queries.GetJobHistoryQueryHandler {
	return queries.NewGetJobHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableDriversQueryHandler() queries.GetAvailableDriversQueryHandler {
	return queries.NewGetAvailableDriversQueryHandler(c.gormDB, c.driverIndex)
}

func (c *CompositionRoot) CreateOptimizeRouteQueryHandler() queries.OptimizeRouteQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewOptimizeRouteQueryHandler(uow.JobRepository())
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePruneLocationHistoryCommandHandler(),
		c.config.LocationRetention,
		c.logger,
	)
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncTrackUoWFactory func() commands.TrackUoW

func (f FuncTrackUoWFactory) Create() commands.TrackUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
