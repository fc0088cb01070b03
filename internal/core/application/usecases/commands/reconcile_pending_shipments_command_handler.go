package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
)

// ReconcilePendingShipmentsCommandHandler sweeps every Pending shipment
// through reconciliation. The inline repair on the order-update path keeps
// shipments consistent in the common case; the sweep catches shipments
// whose repair was lost to a crash or a concurrent writer.
type ReconcilePendingShipmentsCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewReconcilePendingShipmentsCommandHandler creates a handler for the sweep.
func NewReconcilePendingShipmentsCommandHandler(
	uowFactory UoWFactory, logger *slog.Logger,
) ReconcilePendingShipmentsCommandHandler {
	return ReconcilePendingShipmentsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "reconcile_pending_shipments_handler"),
	}
}

// Handle reconciles each Pending shipment in its own transaction and
// returns how many transitioned to InTransit. A failure on one shipment is
// logged and does not stop the sweep.
func (h ReconcilePendingShipmentsCommandHandler) Handle(
	ctx context.Context, cmd ReconcilePendingShipmentsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	pending, err := h.pendingShipmentIDs(ctx)
	if err != nil {
		return 0, err
	}

	transitioned := 0
	for _, shipmentID := range pending {
		ok, err := h.reconcileOne(ctx, shipmentID)
		if err != nil {
			h.logger.WarnContext(ctx, "shipment reconciliation failed",
				"shipmentId", shipmentID.String(), "error", err)
			continue
		}
		if ok {
			transitioned++
		}
	}

	return transitioned, nil
}

func (h ReconcilePendingShipmentsCommandHandler) pendingShipmentIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ids, err := uow.ShipmentRepository().GetAllPendingIDs(ctx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

func (h ReconcilePendingShipmentsCommandHandler) reconcileOne(ctx context.Context, shipmentID kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ok, err := reconcileShipment(ctx, uow.OrderRepository(), uow.ShipmentRepository(), shipmentID)
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return ok, nil
}
