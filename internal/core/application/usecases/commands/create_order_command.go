package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOriginAddressIsRequired      = errs.NewValueIsRequiredError("originAddress")
	ErrDestinationAddressIsRequired = errs.NewValueIsRequiredError("destinationAddress")
	ErrWeightIsInvalid              = errs.NewValueIsInvalidError("weight")
)

// CreateOrderCommand represents a request to register a new shipping order
// for a customer between two addresses.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, "Rua A 1", "Rua B 2", 4.5)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	customerID         kernel.UUID
	originAddress      string
	destinationAddress string
	weight             float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new shipping order.
// Validates that both IDs are valid, both addresses are non-empty, and the
// weight is positive.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	originAddress, destinationAddress string,
	weight float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setAddresses(originAddress, destinationAddress),
		cmd.setWeight(weight),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the requesting customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// OriginAddress returns the pickup address.
func (c CreateOrderCommand) OriginAddress() string {
	return c.originAddress
}

// DestinationAddress returns the delivery address.
func (c CreateOrderCommand) DestinationAddress() string {
	return c.destinationAddress
}

// Weight returns the package weight.
func (c CreateOrderCommand) Weight() float64 {
	return c.weight
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddresses(origin, destination string) error {
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

func (c *CreateOrderCommand) setWeight(weight float64) error {
	if weight <= 0 {
		return ErrWeightIsInvalid
	}

	c.weight = weight
	return nil
}
