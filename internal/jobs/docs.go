// Package jobs provides scheduled background tasks for the donations service.
//
// Jobs run on github.com/robfig/cron/v3 with second-resolution specs and never touch ledger
// rows directly: they go through the same command handlers as the HTTP adapter.
//
// # Available Jobs
//
// 1. PruneCancelledOrdersPackagesJob - deletes redundant (cancelled, zero quantity) ledger
// entries order by order through the prune command
// 2. SyncIssueReportJob - publishes the number of open inventory mirror drift flags as a
// gauge and warns while any are open
//
// # Usage
//
//	jobManager := jobs.NewJobManager(cronMetrics, log, pruneJob, reportJob)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
