package commands_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoredOrder(t *testing.T, status order.Status, carrierID, shipmentID *kernel.UUID) *order.Order {
	t.Helper()

	var errorMessage *string
	if status == order.Failed {
		msg := "lost in transit"
		errorMessage = &msg
	}

	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		carrierID, shipmentID,
		"12 Harbor Way", "300 Elm St",
		4.5,
		status,
		time.Now().UTC(),
		kernel.NewUUID().String(),
		nil, nil,
		errorMessage,
	)
	require.NoError(t, err)
	return o
}

func TestUpdateOrderCommandHandler_Handle_DetailsOnly(t *testing.T) {
	ctx := context.Background()
	existing := restoredOrder(t, order.Pending, nil, nil)

	cmd, err := commands.NewUpdateOrderCommand(existing.ID(), "1 New Origin", "2 New Destination", 7.25, nil, nil, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewUpdateOrderCommandHandler(factory, new(MockCarrierRepository), notifier, &staffDirectoryStub{}, testLogger())
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "1 New Origin", updated.OriginAddress())
	assert.Equal(t, "2 New Destination", updated.DestinationAddress())
	assert.InDelta(t, 7.25, updated.Weight(), 0.001)
	// Neither carrier nor status changed, so nothing is announced.
	assert.Empty(t, notifier.Sent())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_StatusToInTransitReconcilesShipment(t *testing.T) {
	ctx := context.Background()
	carrierID := kernel.NewUUID()
	shipmentID := kernel.NewUUID()
	existing := restoredOrder(t, order.Pending, &carrierID, &shipmentID)

	status := order.InTransit
	cmd, err := commands.NewUpdateOrderCommand(
		existing.ID(), existing.OriginAddress(), existing.DestinationAddress(), existing.Weight(),
		nil, &status, "",
	)
	require.NoError(t, err)

	testCarrier, _ := carrier.NewCarrier(carrierID, "Coastal Freight")

	orderRepo := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	carrierRepo := new(MockCarrierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		// All member orders are now InTransit, so the shipment follows.
		orderRepo.On("CountByShipment", ctx, shipmentID).Return(int64(2), int64(2), nil).Once(),
		shipmentRepo.On("MarkInTransit", ctx, shipmentID, mock.AnythingOfType("time.Time")).Return(true, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	carrierRepo.On("Get", ctx, carrierID).Return(testCarrier, nil)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewUpdateOrderCommandHandler(factory, carrierRepo, notifier, &staffDirectoryStub{}, testLogger())
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InTransit, updated.Status())

	require.Len(t, notifier.ByEvent(ports.EventOrderStatusChange), 1)
	require.Len(t, notifier.ByEvent(ports.EventOrderDispatched), 1)
	assert.Contains(t, notifier.ByEvent(ports.EventOrderDispatched)[0].Message, "Coastal Freight")

	orderRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_ShipmentNotReadyStaysPending(t *testing.T) {
	ctx := context.Background()
	carrierID := kernel.NewUUID()
	shipmentID := kernel.NewUUID()
	existing := restoredOrder(t, order.Pending, &carrierID, &shipmentID)

	status := order.InTransit
	cmd, _ := commands.NewUpdateOrderCommand(
		existing.ID(), existing.OriginAddress(), existing.DestinationAddress(), existing.Weight(),
		nil, &status, "",
	)

	testCarrier, _ := carrier.NewCarrier(carrierID, "Coastal Freight")

	orderRepo := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	carrierRepo := new(MockCarrierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		// A sibling order is still Pending; the shipment must not move.
		orderRepo.On("CountByShipment", ctx, shipmentID).Return(int64(2), int64(1), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	carrierRepo.On("Get", ctx, carrierID).Return(testCarrier, nil)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, carrierRepo, &recordingNotifier{}, &staffDirectoryStub{}, testLogger())
	_, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	shipmentRepo.AssertNotCalled(t, "MarkInTransit", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_CarrierChange(t *testing.T) {
	ctx := context.Background()
	oldCarrierID := kernel.NewUUID()
	newCarrierID := kernel.NewUUID()
	existing := restoredOrder(t, order.Pending, &oldCarrierID, nil)

	cmd, err := commands.NewUpdateOrderCommand(
		existing.ID(), existing.OriginAddress(), existing.DestinationAddress(), existing.Weight(),
		&newCarrierID, nil, "",
	)
	require.NoError(t, err)

	oldCarrier, _ := carrier.NewCarrier(oldCarrierID, "Coastal Freight")
	newCarrier, _ := carrier.NewCarrier(newCarrierID, "Summit Express")

	orderRepo := new(MockOrderRepository)
	carrierRepo := new(MockCarrierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	carrierRepo.On("Get", ctx, oldCarrierID).Return(oldCarrier, nil).Once()
	carrierRepo.On("Get", ctx, newCarrierID).Return(newCarrier, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	staffer := kernel.NewUUID()
	staff := &staffDirectoryStub{recipients: map[ports.StaffRole][]kernel.UUID{
		ports.RoleWarehouseStaff: {staffer},
	}}
	notifier := &recordingNotifier{}

	h := commands.NewUpdateOrderCommandHandler(factory, carrierRepo, notifier, staff, testLogger())
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated.Carrier())
	assert.True(t, updated.Carrier().IsEqual(newCarrierID))

	changed := notifier.ByEvent(ports.EventCarrierChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, staffer, changed[0].RecipientID)
	assert.Contains(t, changed[0].Message, "Coastal Freight")
	assert.Contains(t, changed[0].Message, "Summit Express")
}

func TestUpdateOrderCommandHandler_Handle_MarkFailed(t *testing.T) {
	ctx := context.Background()
	existing := restoredOrder(t, order.Pending, nil, nil)

	status := order.Failed
	cmd, err := commands.NewUpdateOrderCommand(
		existing.ID(), existing.OriginAddress(), existing.DestinationAddress(), existing.Weight(),
		nil, &status, "recipient unreachable",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	staff := &staffDirectoryStub{recipients: map[ports.StaffRole][]kernel.UUID{
		ports.RoleWarehouseStaff: {kernel.NewUUID()},
	}}

	h := commands.NewUpdateOrderCommandHandler(factory, new(MockCarrierRepository), notifier, staff, testLogger())
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Failed, updated.Status())
	require.NotNil(t, updated.ErrorMessage())
	assert.Equal(t, "recipient unreachable", *updated.ErrorMessage())

	failed := notifier.ByEvent(ports.EventOrderFailed)
	require.Len(t, failed, 2) // customer and one warehouse staffer
	assert.Equal(t, ports.SeverityCritical, failed[0].Severity)
}

func TestUpdateOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewUpdateOrderCommand(orderID, "12 Harbor Way", "300 Elm St", 4.5, nil, nil, "")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, new(MockCarrierRepository), &recordingNotifier{}, &staffDirectoryStub{}, testLogger())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
