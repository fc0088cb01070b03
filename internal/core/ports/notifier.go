package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
)

// EventType classifies what a notification is about.
type EventType string

// Event types emitted by the order lifecycle.
const (
	EventOrderCreated      EventType = "ORDER_CREATED"
	EventOrderStatusChange EventType = "ORDER_STATUS_CHANGED"
	EventOrderDispatched   EventType = "ORDER_DISPATCHED"
	EventOrderFailed       EventType = "ORDER_FAILED"
	EventCarrierChanged    EventType = "CARRIER_CHANGED"
	EventDeliveryConfirmed EventType = "DELIVERY_CONFIRMED"
)

// Severity ranks how urgently a notification should be treated downstream.
type Severity string

// Notification severities.
const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// Notification is one typed message for one recipient about one entity.
type Notification struct {
	RecipientID     kernel.UUID
	EventType       EventType
	Title           string
	Message         string
	RelatedEntityID kernel.UUID
	Severity        Severity
	Metadata        map[string]string
}

// Notifier is the notification port. Notify is fire-and-forget: it must
// never propagate a transport or delivery failure back into the caller's
// control flow; implementations swallow and log failures. The core never
// blocks an entity mutation pending notification delivery.
type Notifier interface {
	Notify(ctx context.Context, notification Notification)
}
