package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/ports"
)

// ConfirmDeliveryCommandHandler marks an order as delivered and stores its
// proof of delivery. Confirmation is unconditional with respect to the
// current status: a confirmation that arrives before the carrier's transit
// events still wins.
type ConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmations.
func NewConfirmDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "confirm_delivery_handler"),
	}
}

// Handle confirms delivery of the order identified by the command and
// returns the updated aggregate.
func (h ConfirmDeliveryCommandHandler) Handle(
	ctx context.Context, cmd ConfirmDeliveryCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.ConfirmDelivery(cmd.Proof(), cmd.DeliveredAt()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifyDelivered(ctx, o, cmd)
	return o, nil
}

func (h ConfirmDeliveryCommandHandler) notifyDelivered(
	ctx context.Context, o *order.Order, cmd ConfirmDeliveryCommand,
) {
	message := fmt.Sprintf("Order %s has been delivered", o.TrackingID())
	if cmd.Location() != "" {
		message = fmt.Sprintf("%s at %s", message, cmd.Location())
	}

	metadata := map[string]string{
		"trackingId":  o.TrackingID(),
		"deliveredAt": cmd.DeliveredAt().Format(time.RFC3339),
	}
	if cmd.ProofType() != "" {
		metadata["proofType"] = cmd.ProofType()
	}

	h.notifier.Notify(ctx, ports.Notification{
		RecipientID:     o.CustomerID(),
		EventType:       ports.EventDeliveryConfirmed,
		Title:           "Delivery confirmed",
		Message:         message,
		RelatedEntityID: o.ID(),
		Severity:        ports.SeverityInfo,
		Metadata:        metadata,
	})
}
