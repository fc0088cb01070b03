package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// State-precondition writes (AssignCarrier, LinkToShipment) are conditional
// updates: the predicate carries the precondition so two concurrent callers
// cannot both win a read-then-write race. Zero affected rows means the
// precondition did not hold.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Returns ErrObjectNotFound if the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetBatch retrieves all orders for the given identifiers.
	// Returns ErrObjectNotFound naming the first missing identifier when
	// any of them does not exist.
	GetBatch(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// AssignCarrier sets the carrier with a compare-and-swap on
	// "carrier is currently unset". Returns ErrObjectNotFound if the order
	// does not exist and ErrConflict if a carrier is already assigned.
	AssignCarrier(ctx context.Context, orderID, carrierID kernel.UUID) error

	// LinkToShipment points every listed order at the shipment and
	// overwrites its carrier, conditional on the order still being Pending.
	// Returns the number of orders actually linked; the caller compares it
	// against the batch size and rolls back on mismatch.
	LinkToShipment(ctx context.Context, orderIDs []kernel.UUID, shipmentID, carrierID kernel.UUID) (int64, error)

	// CountByShipment returns the number of member orders of a shipment
	// and how many of them are InTransit.
	CountByShipment(ctx context.Context, shipmentID kernel.UUID) (total, inTransit int64, err error)
}
