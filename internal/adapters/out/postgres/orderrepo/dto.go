// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored by name so the rows stay readable in ad-hoc queries and
// survive reordering of the domain enum.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID  `gorm:"type:uuid;index"`
	CarrierID          *uuid.UUID `gorm:"type:uuid;index"`
	ShipmentID         *uuid.UUID `gorm:"type:uuid;index"`
	OriginAddress      string
	DestinationAddress string
	Weight             float64
	Status             string    `gorm:"index"`
	OrderDate          time.Time `gorm:"index"`
	TrackingID         string    `gorm:"uniqueIndex"`
	ActualDeliveryTime *time.Time
	ProofOfDelivery    []byte
	ErrorMessage       *string
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var carrierID, shipmentID *uuid.UUID
	if id := aggregate.Carrier(); id != nil {
		raw := id.Bytes()
		carrierID = &raw
	}
	if id := aggregate.Shipment(); id != nil {
		raw := id.Bytes()
		shipmentID = &raw
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		CustomerID:         aggregate.CustomerID().Bytes(),
		CarrierID:          carrierID,
		ShipmentID:         shipmentID,
		OriginAddress:      aggregate.OriginAddress(),
		DestinationAddress: aggregate.DestinationAddress(),
		Weight:             aggregate.Weight(),
		Status:             aggregate.Status().String(),
		OrderDate:          aggregate.OrderDate(),
		TrackingID:         aggregate.TrackingID(),
		ActualDeliveryTime: aggregate.ActualDeliveryTime(),
		ProofOfDelivery:    aggregate.ProofOfDelivery(),
		ErrorMessage:       aggregate.ErrorMessage(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := optionalUUID(dto.CarrierID)
	if err != nil {
		return nil, err
	}

	shipmentID, err := optionalUUID(dto.ShipmentID)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID,
		carrierID, shipmentID,
		dto.OriginAddress, dto.DestinationAddress,
		dto.Weight,
		status,
		dto.OrderDate,
		dto.TrackingID,
		dto.ActualDeliveryTime,
		dto.ProofOfDelivery,
		dto.ErrorMessage,
	)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
