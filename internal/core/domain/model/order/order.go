package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrCarrierAlreadyAssigned is returned by the one-shot assignment path
	// when the order already has a carrier.
	ErrCarrierAlreadyAssigned = errs.NewConflictError("carrierId", "already assigned")
	// ErrOrderAlreadyInShipment is returned when linking an order that
	// already belongs to a different shipment.
	ErrOrderAlreadyInShipment = errs.NewConflictError("shipmentId", "already set")
)

// Order is the aggregate root for a single shipping request: one customer,
// two addresses, a weight, and a lifecycle from Pending through InTransit to
// a terminal Delivered or Failed state.
//
// Order maintains these invariants:
//   - customer, addresses, and a positive weight are set at construction
//   - the shipment link, once set, never points to a second shipment
//   - a proof of delivery is only present on Delivered orders, together
//     with the actual delivery time
//   - an error message is only present on Failed orders
//
// The tracking ID is a public identifier distinct from the internal order
// ID, generated at creation and immutable afterwards.
type Order struct {
	id                 kernel.UUID
	customerID         kernel.UUID
	carrierID          *kernel.UUID
	shipmentID         *kernel.UUID
	originAddress      string
	destinationAddress string
	weight             float64
	status             Status
	orderDate          time.Time
	trackingID         string
	actualDeliveryTime *time.Time
	proofOfDelivery    []byte
	errorMessage       *string

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status with no carrier and no
// shipment. The order date is set to the current time and a fresh tracking
// ID is generated.
//
// Parameters:
//   - id: unique identifier for the order
//   - customerID: the requesting customer
//   - originAddress, destinationAddress: pickup and delivery addresses
//   - weight: package weight, must be positive
//
// Returns a validation error if any parameter is invalid.
func NewOrder(id, customerID kernel.UUID, originAddress, destinationAddress string, weight float64) (*Order, error) {
	o := &Order{
		status:     Pending,
		orderDate:  time.Now().UTC(),
		trackingID: kernel.NewUUID().String(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setAddresses(originAddress, destinationAddress),
		o.setWeight(weight),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it accepts the full persisted state and cross-checks the
// status-dependent fields (proof of delivery, error message) against the
// restored status.
func RestoreOrder(
	id, customerID kernel.UUID,
	carrierID, shipmentID *kernel.UUID,
	originAddress, destinationAddress string,
	weight float64,
	status Status,
	orderDate time.Time,
	trackingID string,
	actualDeliveryTime *time.Time,
	proofOfDelivery []byte,
	errorMessage *string,
) (*Order, error) {
	o := &Order{
		carrierID:          carrierID,
		shipmentID:         shipmentID,
		orderDate:          orderDate,
		actualDeliveryTime: actualDeliveryTime,
		proofOfDelivery:    proofOfDelivery,
		errorMessage:       errorMessage,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setAddresses(originAddress, destinationAddress),
		o.setWeight(weight),
		o.setStatus(status),
		o.setTrackingID(trackingID),
	); err != nil {
		return nil, err
	}

	if err := errors.Join(
		status.ValidateCanHaveProof(proofOfDelivery != nil),
		status.ValidateCanHaveErrorMessage(errorMessage != nil),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the requesting customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Carrier returns the assigned carrier's ID, or nil if unassigned.
func (o *Order) Carrier() *kernel.UUID {
	return o.carrierID
}

// Shipment returns the owning shipment's ID, or nil if not yet grouped.
func (o *Order) Shipment() *kernel.UUID {
	return o.shipmentID
}

// OriginAddress returns the pickup address.
func (o *Order) OriginAddress() string {
	return o.originAddress
}

// DestinationAddress returns the delivery address.
func (o *Order) DestinationAddress() string {
	return o.destinationAddress
}

// Weight returns the package weight.
func (o *Order) Weight() float64 {
	return o.weight
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// OrderDate returns the creation timestamp.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// TrackingID returns the public tracking identifier.
func (o *Order) TrackingID() string {
	return o.trackingID
}

// ActualDeliveryTime returns the delivery confirmation time, or nil.
func (o *Order) ActualDeliveryTime() *time.Time {
	return o.actualDeliveryTime
}

// ProofOfDelivery returns the stored proof blob, or nil.
func (o *Order) ProofOfDelivery() []byte {
	return o.proofOfDelivery
}

// ErrorMessage returns the recorded failure reason, or nil.
func (o *Order) ErrorMessage() *string {
	return o.errorMessage
}

// AssignCarrier performs the one-shot carrier assignment.
// Fails with ErrCarrierAlreadyAssigned if a carrier is already set; this is
// an assignment path, not a reassignment path. The status stays Pending;
// assignment alone never starts transit.
//
// The persistence layer enforces the same rule with a conditional update,
// so two concurrent assignments cannot both win.
func (o *Order) AssignCarrier(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	if o.carrierID != nil {
		return ErrCarrierAlreadyAssigned
	}

	o.carrierID = &carrierID
	return nil
}

// ChangeCarrier overwrites the carrier reference. This is the reassignment
// path used by the general update operation.
func (o *Order) ChangeCarrier(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	o.carrierID = &carrierID
	return nil
}

// LinkToShipment attaches the order to a shipment and overwrites the
// carrier with the shipment's carrier. An order already linked to a
// different shipment is rejected: a shipment link, once set, only ever
// points to one shipment.
func (o *Order) LinkToShipment(shipmentID, carrierID kernel.UUID) error {
	if err := errors.Join(shipmentID.Validate(), carrierID.Validate()); err != nil {
		return err
	}
	if o.shipmentID != nil && !o.shipmentID.IsEqual(shipmentID) {
		return ErrOrderAlreadyInShipment
	}

	o.shipmentID = &shipmentID
	o.carrierID = &carrierID
	return nil
}

// ChangeStatus moves the order to the given status.
// Any valid status value is accepted; the general update operation detects
// a status change by simple inequality and does not gate on the prior
// state. Clears proof and error fields that the new status cannot carry.
func (o *Order) ChangeStatus(newStatus Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	o.status = newStatus
	if newStatus != Delivered {
		o.proofOfDelivery = nil
		o.actualDeliveryTime = nil
	}
	if newStatus != Failed {
		o.errorMessage = nil
	}
	return nil
}

// ConfirmDelivery records the proof of delivery, stamps the actual delivery
// time, and moves the order to Delivered unconditionally, regardless of
// the prior status. An order that was never dispatched can still be
// confirmed; the proof is treated as authoritative.
func (o *Order) ConfirmDelivery(proof []byte, deliveredAt time.Time) error {
	if len(proof) == 0 {
		return errs.NewValueIsRequiredError("proofOfDelivery")
	}

	o.proofOfDelivery = proof
	o.actualDeliveryTime = &deliveredAt
	o.status = Delivered
	o.errorMessage = nil
	return nil
}

// MarkFailed moves the order to Failed and records the failure reason.
// The carrier and shipment links are left untouched so the failed order
// remains attributable.
func (o *Order) MarkFailed(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("errorMessage")
	}

	o.status = Failed
	o.errorMessage = &reason
	o.proofOfDelivery = nil
	o.actualDeliveryTime = nil
	return nil
}

// UpdateDetails replaces the addresses and weight.
func (o *Order) UpdateDetails(originAddress, destinationAddress string, weight float64) error {
	return errors.Join(
		o.setAddresses(originAddress, destinationAddress),
		o.setWeight(weight),
	)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setAddresses(origin, destination string) error {
	if strings.TrimSpace(origin) == "" {
		return errs.NewValueIsRequiredError("originAddress")
	}
	if strings.TrimSpace(destination) == "" {
		return errs.NewValueIsRequiredError("destinationAddress")
	}
	o.originAddress = origin
	o.destinationAddress = destination
	return nil
}

func (o *Order) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%g is not greater than 0", weight))
	}
	o.weight = weight
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTrackingID(trackingID string) error {
	if strings.TrimSpace(trackingID) == "" {
		return errs.NewValueIsRequiredError("trackingId")
	}
	o.trackingID = trackingID
	return nil
}
