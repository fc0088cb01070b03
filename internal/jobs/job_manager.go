package jobs

import (
	"fmt"
	"log/slog"

	"shipping/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	shipmentReconciliationJob *ShipmentReconciliationJob
}

// NewJobManager creates a job manager wired to the given handlers.
func NewJobManager(
	reconcileHandler commands.ReconcilePendingShipmentsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		shipmentReconciliationJob: NewShipmentReconciliationJob(reconcileHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.shipmentReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start shipment reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.shipmentReconciliationJob.Stop()
}
