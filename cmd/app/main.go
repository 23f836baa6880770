package main

import (
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/adapters/out/postgres/trackrepo"
	"dispatch/internal/pkg/metrics"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&jobrepo.JobDTO{},
		&jobrepo.StatusEventDTO{},
		&driverrepo.DriverDTO{},
		&trackrepo.SampleDTO{},
	); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	root := cmd.NewCompositionRoot(config, gormDB, logger)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, config.HTTPPort)
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true

	collector := metrics.NewCollector()
	e.Use(collector.Middleware())

	server := httpadapter.NewServer(
		root.CreateCreateJobCommandHandler(),
		root.CreateAssignJobCommandHandler(),
		root.CreateUpdateJobStatusCommandHandler(),
		root.CreateCancelJobCommandHandler(),
		root.CreateCreateDriverCommandHandler(),
		root.CreateSetDriverAvailabilityCommandHandler(),
		root.CreateRecordDriverLocationCommandHandler(),
		root.CreateGetJobHistoryQueryHandler(),
		root.CreateGetAvailableDriversQueryHandler(),
		root.CreateOptimizeRouteQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.String(stdhttp.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
