// Package ports defines the contracts between the application core and its
// collaborators: repositories, the unit of work, the notification port, and
// the staff directory.
package ports

import (
	"context"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/kernel"
)

// CarrierRepository is the read-only carrier/driver directory.
// Carriers and drivers are owned by an external system; this core only
// resolves them when creating shipments and when naming carriers in
// notifications.
type CarrierRepository interface {
	// Get retrieves a carrier by its unique identifier.
	// Returns ErrObjectNotFound if the carrier does not exist.
	Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)

	// GetDrivers retrieves the driver pool of a carrier.
	// An existing carrier with no drivers yields an empty slice, not an
	// error; the caller decides whether that blocks the operation.
	GetDrivers(ctx context.Context, carrierID kernel.UUID) ([]*carrier.Driver, error)
}
