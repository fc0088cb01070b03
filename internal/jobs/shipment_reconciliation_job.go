package jobs

import (
	"context"
	"log/slog"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ShipmentReconciliationJob periodically sweeps Pending shipments and
// transitions those whose member orders have all been dispatched. It closes
// the consistency windows left when an order update crashed between its
// commit and the shipment check.
type ShipmentReconciliationJob struct {
	handler commands.ReconcilePendingShipmentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewShipmentReconciliationJob creates the sweep job. It runs every 30 seconds.
func NewShipmentReconciliationJob(
	handler commands.ReconcilePendingShipmentsCommandHandler,
	logger *slog.Logger,
) *ShipmentReconciliationJob {
	return &ShipmentReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "shipment_reconciliation_job"),
	}
}

// Start schedules the sweep.
func (j *ShipmentReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewReconcilePendingShipmentsCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Shipment reconciliation sweep setup failed", "error", cmdErr)
			return
		}

		transitioned, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Shipment reconciliation sweep failed", "error", handleErr)
			return
		}

		if transitioned > 0 {
			j.logger.InfoContext(ctx, "Shipment reconciliation sweep transitioned shipments",
				"transitioned", transitioned)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shipment reconciliation job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *ShipmentReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shipment reconciliation job stopped")
}
