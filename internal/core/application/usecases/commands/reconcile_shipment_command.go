package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrReconcileShipmentCommandIsNotConstructed = errors.New(
	"ReconcileShipmentCommand must be created via NewReconcileShipmentCommand constructor",
)

// ReconcileShipmentCommand requests recomputation of one shipment's derived
// status from its member orders.
type ReconcileShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReconcileShipmentCommand creates a command to reconcile a shipment.
func NewReconcileShipmentCommand(shipmentID kernel.UUID) (ReconcileShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return ReconcileShipmentCommand{}, errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}

	return ReconcileShipmentCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileShipmentCommand) Validate() error {
	return c.guard.Validate(ErrReconcileShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to reconcile.
func (c ReconcileShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
