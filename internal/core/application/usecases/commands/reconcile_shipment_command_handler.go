package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// ReconcileShipmentCommandHandler repairs a shipment's derived status from
// its member orders: when a shipment has at least one member order and all
// of them are InTransit, the shipment becomes InTransit.
//
// The routine attempts no other transition: it never moves a shipment out
// of InTransit and does nothing for shipments with zero member orders. It
// is idempotent: the status write is conditional on the shipment still
// being Pending, so repeated reconciliation is harmless.
type ReconcileShipmentCommandHandler struct {
	uowFactory UoWFactory
}

// NewReconcileShipmentCommandHandler creates a handler for shipment reconciliation.
func NewReconcileShipmentCommandHandler(uowFactory UoWFactory) ReconcileShipmentCommandHandler {
	return ReconcileShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle reconciles a single shipment in its own transaction.
// Returns true when the shipment transitioned to InTransit.
func (h ReconcileShipmentCommandHandler) Handle(ctx context.Context, cmd ReconcileShipmentCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transitioned, err := reconcileShipment(ctx, uow.OrderRepository(), uow.ShipmentRepository(), cmd.ShipmentID())
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return transitioned, nil
}

// reconcileShipment applies the reconciliation rule against the given
// repositories. Callers that already hold a transaction (the order update
// path) pass their transaction-bound repositories so the repair commits
// together with the mutation that triggered it.
func reconcileShipment(
	ctx context.Context,
	orders ports.OrderRepository,
	shipments ports.ShipmentRepository,
	shipmentID kernel.UUID,
) (bool, error) {
	total, inTransit, err := orders.CountByShipment(ctx, shipmentID)
	if err != nil {
		return false, err
	}

	if total == 0 || inTransit != total {
		return false, nil
	}

	return shipments.MarkInTransit(ctx, shipmentID, time.Now().UTC())
}
