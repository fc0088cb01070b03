package commands

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var ErrReconcilePendingShipmentsCommandIsNotConstructed = errors.New(
	"ReconcilePendingShipmentsCommand must be created via NewReconcilePendingShipmentsCommand constructor",
)

// ReconcilePendingShipmentsCommand asks for a sweep over every Pending
// shipment. It carries no parameters; the handler discovers the candidate
// set itself.
type ReconcilePendingShipmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcilePendingShipmentsCommand creates a sweep command.
func NewReconcilePendingShipmentsCommand() (ReconcilePendingShipmentsCommand, error) {
	return ReconcilePendingShipmentsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcilePendingShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePendingShipmentsCommandIsNotConstructed)
}
