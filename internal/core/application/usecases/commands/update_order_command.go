package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// defaultFailureReason is recorded when an update moves an order to Failed
// without supplying a reason.
const defaultFailureReason = "No reason provided"

// UpdateOrderCommand is the general mutator covering address, weight,
// carrier, and status changes together. Carrier and status are optional:
// nil means "leave unchanged". Unlike the one-shot assignment command, a
// non-nil carrier here overwrites any prior carrier; this is the
// reassignment path.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	originAddress      string
	destinationAddress string
	weight             float64
	carrierID          *kernel.UUID
	status             *order.Status
	failureReason      string

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command carrying the full set of mutable
// order fields. The failure reason is only consulted when status moves to
// Failed; blank falls back to a placeholder.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	originAddress, destinationAddress string,
	weight float64,
	carrierID *kernel.UUID,
	status *order.Status,
	failureReason string,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		failureReason: failureReason,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAddresses(originAddress, destinationAddress),
		cmd.setWeight(weight),
		cmd.setCarrierID(carrierID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OriginAddress returns the new pickup address.
func (c UpdateOrderCommand) OriginAddress() string {
	return c.originAddress
}

// DestinationAddress returns the new delivery address.
func (c UpdateOrderCommand) DestinationAddress() string {
	return c.destinationAddress
}

// Weight returns the new package weight.
func (c UpdateOrderCommand) Weight() float64 {
	return c.weight
}

// CarrierID returns the new carrier reference, or nil to leave it unchanged.
func (c UpdateOrderCommand) CarrierID() *kernel.UUID {
	return c.carrierID
}

// Status returns the new status, or nil to leave it unchanged.
func (c UpdateOrderCommand) Status() *order.Status {
	return c.status
}

// FailureReason returns the supplied failure reason, defaulted to a
// placeholder when blank.
func (c UpdateOrderCommand) FailureReason() string {
	if strings.TrimSpace(c.failureReason) == "" {
		return defaultFailureReason
	}
	return c.failureReason
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setAddresses(origin, destination string) error {
	if strings.TrimSpace(origin) == "" {
		return ErrOriginAddressIsRequired
	}
	if strings.TrimSpace(destination) == "" {
		return ErrDestinationAddressIsRequired
	}

	c.originAddress = origin
	c.destinationAddress = destination
	return nil
}

func (c *UpdateOrderCommand) setWeight(weight float64) error {
	if weight <= 0 {
		return ErrWeightIsInvalid
	}

	c.weight = weight
	return nil
}

func (c *UpdateOrderCommand) setCarrierID(carrierID *kernel.UUID) error {
	if carrierID == nil {
		return nil
	}
	if err := carrierID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("carrierId", err)
	}

	c.carrierID = carrierID
	return nil
}

func (c *UpdateOrderCommand) setStatus(status *order.Status) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
