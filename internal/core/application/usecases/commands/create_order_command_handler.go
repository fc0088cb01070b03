package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates the order in Pending status with a fresh tracking ID, then asks
// the notification port to tell the customer and the warehouse staff. The
// notification calls are best-effort: their failure never fails creation.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	staff      ports.StaffDirectory
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	staff ports.StaffDirectory,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		staff:      staff,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order creation command.
// Persists the new Pending order inside a transaction and returns it;
// notifications go out only after a successful commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.OriginAddress(),
		cmd.DestinationAddress(),
		cmd.Weight(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifyCreated(ctx, newOrder)
	return newOrder, nil
}

func (h CreateOrderCommandHandler) notifyCreated(ctx context.Context, o *order.Order) {
	h.notifier.Notify(ctx, ports.Notification{
		RecipientID:     o.CustomerID(),
		EventType:       ports.EventOrderCreated,
		Title:           "Order created",
		Message:         fmt.Sprintf("Your order has been created. Tracking ID: %s", o.TrackingID()),
		RelatedEntityID: o.ID(),
		Severity:        ports.SeverityInfo,
		Metadata:        map[string]string{"trackingId": o.TrackingID()},
	})

	notifyRole(ctx, h.logger, h.staff, h.notifier, ports.RoleWarehouseStaff,
		func(recipient kernel.UUID) ports.Notification {
			return ports.Notification{
				RecipientID:     recipient,
				EventType:       ports.EventOrderCreated,
				Title:           "New order received",
				Message:         fmt.Sprintf("Order %s awaits processing (%s -> %s)", o.ID(), o.OriginAddress(), o.DestinationAddress()),
				RelatedEntityID: o.ID(),
				Severity:        ports.SeverityInfo,
			}
		})
}
