package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/ports"
)

// UpdateOrderCommandHandler applies the general order mutation and fans out
// the resulting notifications.
//
// Change detection happens against the state read at the start of the
// transaction: a carrier change is "old and new differ and new is set", a
// status change is simple inequality. When the new status is InTransit and
// the order belongs to a shipment, the shipment is reconciled inside the
// same transaction, so the derived status and the triggering mutation
// commit together.
//
// Every notification call is isolated: a failure in any one never prevents
// the others and never aborts the already-committed mutation.
type UpdateOrderCommandHandler struct {
	uowFactory  UoWFactory
	carrierRepo ports.CarrierRepository
	notifier    ports.Notifier
	staff       ports.StaffDirectory
	logger      *slog.Logger
}

// NewUpdateOrderCommandHandler creates a handler for general order updates.
func NewUpdateOrderCommandHandler(
	uowFactory UoWFactory,
	carrierRepo ports.CarrierRepository,
	notifier ports.Notifier,
	staff ports.StaffDirectory,
	logger *slog.Logger,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory:  uowFactory,
		carrierRepo: carrierRepo,
		notifier:    notifier,
		staff:       staff,
		logger:      logger.With("component", "update_order_handler"),
	}
}

// Handle processes the update command and returns the updated order.
// Fails with ErrObjectNotFound if the order does not exist.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	oldCarrier := o.Carrier()
	oldStatus := o.Status()

	if err = h.applyMutation(o, cmd); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	carrierChanged := cmd.CarrierID() != nil && (oldCarrier == nil || !oldCarrier.IsEqual(*cmd.CarrierID()))
	statusChanged := cmd.Status() != nil && *cmd.Status() != oldStatus

	if statusChanged && o.Status() == order.InTransit && o.Shipment() != nil {
		if _, err = reconcileShipment(ctx, orderRepo, uow.ShipmentRepository(), *o.Shipment()); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if carrierChanged {
		h.notifyCarrierChanged(ctx, o, oldCarrier)
	}
	if statusChanged {
		h.notifyStatusChanged(ctx, o, oldStatus)
	}

	return o, nil
}

func (h UpdateOrderCommandHandler) applyMutation(o *order.Order, cmd UpdateOrderCommand) error {
	if err := o.UpdateDetails(cmd.OriginAddress(), cmd.DestinationAddress(), cmd.Weight()); err != nil {
		return err
	}

	if cmd.CarrierID() != nil {
		if err := o.ChangeCarrier(*cmd.CarrierID()); err != nil {
			return err
		}
	}

	if cmd.Status() != nil {
		if *cmd.Status() == order.Failed {
			return o.MarkFailed(cmd.FailureReason())
		}
		return o.ChangeStatus(*cmd.Status())
	}

	return nil
}

// carrierName resolves a carrier's display name for notification text,
// falling back to the raw identifier when the directory is unavailable.
func (h UpdateOrderCommandHandler) carrierName(ctx context.Context, id *kernel.UUID) string {
	if id == nil {
		return "unassigned"
	}

	c, err := h.carrierRepo.Get(ctx, *id)
	if err != nil {
		h.logger.WarnContext(ctx, "carrier lookup failed, using ID in notification",
			"carrierId", id.String(), "error", err)
		return id.String()
	}
	return c.Name()
}

func (h UpdateOrderCommandHandler) notifyCarrierChanged(ctx context.Context, o *order.Order, oldCarrier *kernel.UUID) {
	oldName := h.carrierName(ctx, oldCarrier)
	newName := h.carrierName(ctx, o.Carrier())

	notifyRole(ctx, h.logger, h.staff, h.notifier, ports.RoleWarehouseStaff,
		func(recipient kernel.UUID) ports.Notification {
			return ports.Notification{
				RecipientID:     recipient,
				EventType:       ports.EventCarrierChanged,
				Title:           "Order carrier changed",
				Message:         fmt.Sprintf("Order %s carrier changed from %s to %s", o.ID(), oldName, newName),
				RelatedEntityID: o.ID(),
				Severity:        ports.SeverityInfo,
			}
		})
}

func (h UpdateOrderCommandHandler) notifyStatusChanged(ctx context.Context, o *order.Order, oldStatus order.Status) {
	h.notifier.Notify(ctx, ports.Notification{
		RecipientID:     o.CustomerID(),
		EventType:       ports.EventOrderStatusChange,
		Title:           "Order status updated",
		Message:         fmt.Sprintf("Your order is now %s (was %s)", o.Status(), oldStatus),
		RelatedEntityID: o.ID(),
		Severity:        ports.SeverityInfo,
		Metadata: map[string]string{
			"oldStatus": oldStatus.String(),
			"newStatus": o.Status().String(),
		},
	})

	switch o.Status() {
	case order.InTransit:
		h.notifier.Notify(ctx, ports.Notification{
			RecipientID:     o.CustomerID(),
			EventType:       ports.EventOrderDispatched,
			Title:           "Order dispatched",
			Message:         fmt.Sprintf("Your order is on its way with %s", h.carrierName(ctx, o.Carrier())),
			RelatedEntityID: o.ID(),
			Severity:        ports.SeverityInfo,
		})
	case order.Failed:
		reason := defaultFailureReason
		if o.ErrorMessage() != nil {
			reason = *o.ErrorMessage()
		}

		h.notifier.Notify(ctx, ports.Notification{
			RecipientID:     o.CustomerID(),
			EventType:       ports.EventOrderFailed,
			Title:           "Delivery problem",
			Message:         fmt.Sprintf("Your order could not be delivered: %s", reason),
			RelatedEntityID: o.ID(),
			Severity:        ports.SeverityCritical,
		})
		notifyRole(ctx, h.logger, h.staff, h.notifier, ports.RoleWarehouseStaff,
			func(recipient kernel.UUID) ports.Notification {
				return ports.Notification{
					RecipientID:     recipient,
					EventType:       ports.EventOrderFailed,
					Title:           "Order failed",
					Message:         fmt.Sprintf("Order %s failed: %s", o.ID(), reason),
					RelatedEntityID: o.ID(),
					Severity:        ports.SeverityCritical,
				}
			})
	}
}
