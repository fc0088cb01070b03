// Package shipment provides the Shipment aggregate: a batch of orders
// handed to one carrier and one driver, tracked as a unit for transit.
//
// A shipment's member-order set is defined by the orders pointing at it,
// not by a list held here; the shipment itself only carries the carrier,
// the chosen driver, the transit window, and a derived status that
// reconciliation repairs from the member orders.
package shipment

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Domain errors for shipment operations.
var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was
	// not created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment constructor")
	// ErrShipmentNotPending is returned when marking a shipment in transit
	// from any state other than Pending.
	ErrShipmentNotPending = errs.NewConflictError("status", "not Pending")
)

// Shipment is the aggregate root for a batch of orders in transit together.
//
// Invariants:
//   - the carrier is set at creation and immutable afterwards
//   - the only transition owned by this core is Pending -> InTransit,
//     performed by reconciliation when all member orders are in transit
type Shipment struct {
	id            kernel.UUID
	carrierID     kernel.UUID
	driverID      *kernel.UUID
	departureTime *time.Time
	arrivalTime   *time.Time
	status        Status

	guard guard.ConstructorGuard
}

// NewShipment creates a new Shipment in Pending status for the given
// carrier with the selected driver.
func NewShipment(id, carrierID, driverID kernel.UUID) (*Shipment, error) {
	s := &Shipment{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setCarrierID(carrierID),
		s.setDriverID(driverID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a Shipment aggregate from persistent storage.
func RestoreShipment(
	id, carrierID kernel.UUID,
	driverID *kernel.UUID,
	departureTime, arrivalTime *time.Time,
	status Status,
) (*Shipment, error) {
	s := &Shipment{
		driverID:      driverID,
		departureTime: departureTime,
		arrivalTime:   arrivalTime,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setCarrierID(carrierID),
		s.setStatus(status),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Carrier returns the carrier the shipment was created for.
func (s *Shipment) Carrier() kernel.UUID {
	return s.carrierID
}

// Driver returns the driver chosen at creation, or nil.
func (s *Shipment) Driver() *kernel.UUID {
	return s.driverID
}

// DepartureTime returns when the shipment entered transit, or nil.
func (s *Shipment) DepartureTime() *time.Time {
	return s.departureTime
}

// ArrivalTime returns when the shipment arrived, or nil.
func (s *Shipment) ArrivalTime() *time.Time {
	return s.arrivalTime
}

// Status returns the current status of the shipment.
func (s *Shipment) Status() Status {
	return s.status
}

// MarkInTransit moves the shipment from Pending to InTransit and stamps the
// departure time on first entry. Any other starting state is a conflict;
// reconciliation never moves a shipment out of InTransit.
func (s *Shipment) MarkInTransit(departedAt time.Time) error {
	if s.status != Pending {
		return ErrShipmentNotPending
	}

	s.status = InTransit
	if s.departureTime == nil {
		s.departureTime = &departedAt
	}
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("carrierId", err)
	}
	s.carrierID = carrierID
	return nil
}

func (s *Shipment) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	s.driverID = &driverID
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
