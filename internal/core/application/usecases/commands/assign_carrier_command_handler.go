package commands

import (
	"context"

	"shipping/internal/core/domain/model/order"
)

// AssignCarrierCommandHandler performs the one-shot carrier assignment.
//
// The assignment is a compare-and-swap at the repository: "set the carrier
// where none is currently set". Two concurrent assignments on the same
// order cannot both win: the loser gets a ConflictError, and the order's
// status stays Pending either way (assignment alone never starts transit).
// The operation is retry-safe: a retried winner sees ConflictError and
// knows the assignment took effect.
type AssignCarrierCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignCarrierCommandHandler creates a handler for carrier assignment.
func NewAssignCarrierCommandHandler(uowFactory OrderUoWFactory) AssignCarrierCommandHandler {
	return AssignCarrierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the carrier assignment command and returns the updated
// order. Fails with ErrObjectNotFound if the order does not exist and
// ErrConflict if a carrier is already assigned.
func (h AssignCarrierCommandHandler) Handle(ctx context.Context, cmd AssignCarrierCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err := orderRepo.AssignCarrier(ctx, cmd.OrderID(), cmd.CarrierID()); err != nil {
		return nil, err
	}

	updated, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}
