// Package jobs provides scheduled background tasks for the shipping system.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager, which provides a unified start/stop interface:
//
//	jobManager := jobs.NewJobManager(reconcileHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// ShipmentReconciliationJob runs every 30 seconds and applies the shipment
// reconciliation rule to every Pending shipment: when all member orders are
// InTransit, the shipment itself becomes InTransit. The job is a safety net
// behind the synchronous reconciliation performed during order updates; it
// repairs shipments stranded by crashes between an order commit and the
// shipment status check.
package jobs
