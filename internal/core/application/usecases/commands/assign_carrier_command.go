package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrAssignCarrierCommandIsNotConstructed = errors.New(
	"AssignCarrierCommand must be created via NewAssignCarrierCommand constructor",
)

// AssignCarrierCommand represents the one-shot assignment of a carrier to
// an order. Reassignment goes through the general update operation instead.
type AssignCarrierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	carrierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCarrierCommand creates a command to assign a carrier to an order.
func NewAssignCarrierCommand(orderID, carrierID kernel.UUID) (AssignCarrierCommand, error) {
	cmd := AssignCarrierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCarrierID(carrierID),
	); err != nil {
		return AssignCarrierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCarrierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCarrierCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignCarrierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CarrierID returns the carrier being assigned.
func (c AssignCarrierCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

func (c *AssignCarrierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	c.orderID = orderID
	return nil
}

func (c *AssignCarrierCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("carrierId", err)
	}

	c.carrierID = carrierID
	return nil
}
