package queries

import (
	"database/sql"

	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// orderColumns is the projection shared by every order query.
const orderColumns = `
	id,
	customer_id,
	tracking_id,
	origin_address,
	destination_address,
	weight,
	status,
	order_date,
	carrier_id,
	shipment_id,
	actual_delivery_time,
	error_message
`

// scanOrderRow reads one projection row into an OrderResponse.
func scanOrderRow(rows *sql.Rows) (OrderResponse, error) {
	var (
		resp               OrderResponse
		id, customerID     uuid.UUID
		carrierID          uuid.NullUUID
		shipmentID         uuid.NullUUID
		actualDeliveryTime sql.NullTime
		errorMessage       sql.NullString
	)

	err := rows.Scan(
		&id,
		&customerID,
		&resp.TrackingID,
		&resp.OriginAddress,
		&resp.DestinationAddress,
		&resp.Weight,
		&resp.Status,
		&resp.OrderDate,
		&carrierID,
		&shipmentID,
		&actualDeliveryTime,
		&errorMessage,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderResponse{}, err
	}

	if carrierID.Valid {
		s := carrierID.UUID.String()
		resp.CarrierID = &s
	}
	if shipmentID.Valid {
		s := shipmentID.UUID.String()
		resp.ShipmentID = &s
	}
	if actualDeliveryTime.Valid {
		t := actualDeliveryTime.Time
		resp.ActualDeliveryTime = &t
	}
	if errorMessage.Valid {
		m := errorMessage.String
		resp.ErrorMessage = &m
	}

	return resp, nil
}
