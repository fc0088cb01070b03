package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/ports"
)

// ReportAnomalyCommandHandler marks an order as failed with the reported
// anomaly as the failure reason and alerts the customer service and
// warehouse teams alongside the customer. Each notification is sent
// independently: one recipient group failing to resolve never blocks the
// others.
type ReportAnomalyCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	staff      ports.StaffDirectory
	logger     *slog.Logger
}

// NewReportAnomalyCommandHandler creates a handler for anomaly reports.
func NewReportAnomalyCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	staff ports.StaffDirectory,
	logger *slog.Logger,
) ReportAnomalyCommandHandler {
	return ReportAnomalyCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		staff:      staff,
		logger:     logger.With("component", "report_anomaly_handler"),
	}
}

// Handle records the anomaly against the order and returns the updated
// aggregate.
func (h ReportAnomalyCommandHandler) Handle(
	ctx context.Context, cmd ReportAnomalyCommand,
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

	if err = o.MarkFailed(cmd.ErrorMessage()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifyAnomaly(ctx, o, cmd)
	return o, nil
}

func (h ReportAnomalyCommandHandler) notifyAnomaly(
	ctx context.Context, o *order.Order, cmd ReportAnomalyCommand,
) {
	metadata := map[string]string{
		"trackingId": o.TrackingID(),
		"customerId": o.CustomerID().String(),
	}

	notifyRole(ctx, h.logger, h.staff, h.notifier, ports.RoleCustomerServiceRep,
		func(recipient kernel.UUID) ports.Notification {
			return ports.Notification{
				RecipientID: recipient,
				EventType:   ports.EventOrderFailed,
				Title:       "Delivery anomaly reported",
				Message: fmt.Sprintf("Order %s reported an anomaly: %s",
					o.TrackingID(), cmd.ErrorMessage()),
				RelatedEntityID: o.ID(),
				Severity:        ports.SeverityCritical,
				Metadata:        metadata,
			}
		})

	h.notifier.Notify(ctx, ports.Notification{
		RecipientID: o.CustomerID(),
		EventType:   ports.EventOrderFailed,
		Title:       "Problem with your order",
		Message: fmt.Sprintf("Order %s could not be delivered: %s",
			o.TrackingID(), cmd.ErrorMessage()),
		RelatedEntityID: o.ID(),
		Severity:        ports.SeverityCritical,
		Metadata:        metadata,
	})

	notifyRole(ctx, h.logger, h.staff, h.notifier, ports.RoleWarehouseStaff,
		func(recipient kernel.UUID) ports.Notification {
			return ports.Notification{
				RecipientID: recipient,
				EventType:   ports.EventOrderFailed,
				Title:       "Delivery anomaly reported",
				Message: fmt.Sprintf("Order %s reported an anomaly: %s",
					o.TrackingID(), cmd.ErrorMessage()),
				RelatedEntityID: o.ID(),
				Severity:        ports.SeverityWarning,
				Metadata:        metadata,
			}
		})
}
