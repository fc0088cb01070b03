// Package queries contains read operations on the order store.
// Queries bypass the domain aggregates and read projection rows straight
// from the database, per the CQRS split used across the application layer.
package queries

import (
	"errors"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrGetOrderByTrackingIDQueryIsNotConstructed = errors.New(
		"GetOrderByTrackingIDQuery must be created via NewGetOrderByTrackingIDQuery constructor",
	)
	ErrTrackingIDIsRequired = errs.NewValueIsRequiredError("trackingId")
)

// GetOrderByTrackingIDQuery looks an order up by its public tracking
// identifier. This is the query behind customer-facing tracking pages, so
// results are served through a short-lived cache when one is configured.
type GetOrderByTrackingIDQuery struct { //nolint:recvcheck //using for validation
	trackingID string

	guard guard.ConstructorGuard
}

// NewGetOrderByTrackingIDQuery creates a query for one tracked order.
func NewGetOrderByTrackingIDQuery(trackingID string) (GetOrderByTrackingIDQuery, error) {
	if strings.TrimSpace(trackingID) == "" {
		return GetOrderByTrackingIDQuery{}, ErrTrackingIDIsRequired
	}

	return GetOrderByTrackingIDQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByTrackingIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByTrackingIDQueryIsNotConstructed)
}

// TrackingID returns the tracking identifier being looked up.
func (q GetOrderByTrackingIDQuery) TrackingID() string {
	return q.trackingID
}

// OrderResponse is the read-side projection of one order. It carries JSON
// tags because the tracking cache stores it serialized.
type OrderResponse struct {
	ID                 kernel.UUID `json:"orderId"`
	CustomerID         kernel.UUID `json:"customerId"`
	TrackingID         string      `json:"trackingId"`
	OriginAddress      string      `json:"originAddress"`
	DestinationAddress string      `json:"destinationAddress"`
	Weight             float64     `json:"weight"`
	Status             string      `json:"status"`
	OrderDate          time.Time   `json:"orderDate"`
	CarrierID          *string     `json:"carrierId,omitempty"`
	ShipmentID         *string     `json:"shipmentId,omitempty"`
	ActualDeliveryTime *time.Time  `json:"actualDeliveryTime,omitempty"`
	ErrorMessage       *string     `json:"errorMessage,omitempty"`
}
