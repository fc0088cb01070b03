// Package shipmentrepo persists shipment aggregates.
package shipmentrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipments.
type ShipmentDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CarrierID     uuid.UUID  `gorm:"type:uuid;index"`
	DriverID      *uuid.UUID `gorm:"type:uuid"`
	DepartureTime *time.Time
	ArrivalTime   *time.Time
	Status        string `gorm:"index"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return ShipmentDTO{
		ID:            aggregate.ID().Bytes(),
		CarrierID:     aggregate.Carrier().Bytes(),
		DriverID:      driverID,
		DepartureTime: aggregate.DepartureTime(),
		ArrivalTime:   aggregate.ArrivalTime(),
		Status:        aggregate.Status().String(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(id, carrierID, driverID, dto.DepartureTime, dto.ArrivalTime, status)
}
