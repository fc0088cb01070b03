package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// MarkInTransit moves the shipment to InTransit with a compare-and-swap
	// on "status is currently Pending", stamping the departure time on
	// success. Returns false without error when the shipment was not
	// Pending, which keeps reconciliation idempotent.
	MarkInTransit(ctx context.Context, id kernel.UUID, departedAt time.Time) (bool, error)

	// GetAllPendingIDs returns the identifiers of every Pending shipment.
	// Used by the reconciliation sweep.
	GetAllPendingIDs(ctx context.Context) ([]kernel.UUID, error)
}
