package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrOrderIDsAreRequired = errs.NewValueIsRequiredError("orderIds")
)

// CreateShipmentCommand represents a request to group a batch of Pending
// orders into one shipment under one carrier.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	orderIDs  []kernel.UUID
	carrierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to group orders into a shipment.
// Rejects an empty batch and malformed identifiers.
func NewCreateShipmentCommand(orderIDs []kernel.UUID, carrierID kernel.UUID) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setCarrierID(carrierID),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// OrderIDs returns the batch of orders to group.
func (c CreateShipmentCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// CarrierID returns the carrier the shipment is created for.
func (c CreateShipmentCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

func (c *CreateShipmentCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("orderIds", err)
		}
	}

	c.orderIDs = orderIDs
	return nil
}

func (c *CreateShipmentCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("carrierId", err)
	}

	c.carrierID = carrierID
	return nil
}
