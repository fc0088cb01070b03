// Package carrierrepo reads the carrier and driver directory tables.
// Carriers and drivers are mastered by an external system; this adapter
// only resolves them.
package carrierrepo

import (
	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CarrierDTO represents one row of the carrier directory.
type CarrierDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

// TableName specifies the database table name for carrier entities.
func (CarrierDTO) TableName() string {
	return "carriers"
}

// DriverDTO represents one row of the driver directory.
type DriverDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarrierID uuid.UUID `gorm:"type:uuid;index"`
	Name      string
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

func carrierToDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return carrier.NewCarrier(id, dto.Name)
}

func driverToDomain(dto DriverDTO) (*carrier.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	return carrier.NewDriver(id, carrierID, dto.Name)
}
