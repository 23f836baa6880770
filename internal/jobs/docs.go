// Package jobs provides scheduled background tasks for the dispatch system.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager, which offers a unified start/stop interface:
//
//	jobManager := jobs.NewJobManager(pruneHandler, retention, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Currently one job is registered: LocationRetentionJob, which runs every
// ten minutes and deletes location samples older than the configured
// retention window.
package jobs
