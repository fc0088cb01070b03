package commands_test

import (
	"context"
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignCarrierCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	carrierID := kernel.NewUUID()
	cmd, err := commands.NewAssignCarrierCommand(orderID, carrierID)
	require.NoError(t, err)

	assigned, _ := order.NewOrder(orderID, kernel.NewUUID(), "12 Harbor Way", "300 Elm St", 4.5)
	require.NoError(t, assigned.AssignCarrier(carrierID))

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("AssignCarrier", ctx, orderID, carrierID).Return(nil).Once(),
		repo.On("Get", ctx, orderID).Return(assigned, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCarrierCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated.Carrier())
	assert.True(t, updated.Carrier().IsEqual(carrierID))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignCarrierCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	cmd := commands.AssignCarrierCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	h := commands.NewAssignCarrierCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignCarrierCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignCarrierCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	carrierID := kernel.NewUUID()
	cmd, _ := commands.NewAssignCarrierCommand(orderID, carrierID)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("AssignCarrier", ctx, orderID, carrierID).
			Return(errs.NewObjectNotFoundError("orderId", orderID)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCarrierCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAssignCarrierCommandHandler_Handle_CarrierAlreadyAssigned(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	carrierID := kernel.NewUUID()
	cmd, _ := commands.NewAssignCarrierCommand(orderID, carrierID)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("AssignCarrier", ctx, orderID, carrierID).
			Return(errs.NewConflictError("carrierId", "already assigned")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCarrierCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestAssignCarrierCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	carrierID := kernel.NewUUID()
	cmd, _ := commands.NewAssignCarrierCommand(orderID, carrierID)

	assigned, _ := order.NewOrder(orderID, kernel.NewUUID(), "12 Harbor Way", "300 Elm St", 4.5)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("AssignCarrier", ctx, orderID, carrierID).Return(nil).Once(),
		repo.On("Get", ctx, orderID).Return(assigned, nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCarrierCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
}
