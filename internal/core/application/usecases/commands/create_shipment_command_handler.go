package commands

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

var (
	// ErrOrderNotValid is returned when any order in the batch does not
	// exist or is not Pending. The whole batch is rejected before any
	// mutation.
	ErrOrderNotValid = errors.New("order is missing or not in Pending status")
	// ErrCarrierNotFound is returned when the carrier does not exist in the
	// directory.
	ErrCarrierNotFound = errors.New("carrier not found")
	// ErrNoDriverAvailable is returned when the carrier has no drivers.
	ErrNoDriverAvailable = errors.New("no driver available for carrier")
)

// CreateShipmentResult reports what the shipment creation produced.
type CreateShipmentResult struct {
	ShipmentID    kernel.UUID
	DriverID      kernel.UUID
	CarrierID     kernel.UUID
	OrdersUpdated int64
}

// CreateShipmentCommandHandler groups a batch of Pending orders into a new
// shipment, selecting a driver uniformly at random from the carrier's pool.
//
// The shipment insert and the order links are one atomic unit: either the
// shipment and all links commit, or nothing does. The link update is
// conditional on each order still being Pending, so an order that changed
// state between validation and linking rolls the whole batch back instead
// of leaving a half-linked shipment behind. That also makes the operation
// safe to retry.
//
// Driver selection makes no reservation; a driver may be selected for
// multiple concurrent shipments. This is accepted, not a defect.
type CreateShipmentCommandHandler struct {
	uowFactory  UoWFactory
	carrierRepo ports.CarrierRepository
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(uowFactory UoWFactory, carrierRepo ports.CarrierRepository) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory:  uowFactory,
		carrierRepo: carrierRepo,
	}
}

// Handle processes the shipment creation command.
//
// The order batch is validated before the carrier is resolved, so a bad
// batch reports ErrOrderNotValid even when the carrier is also unknown.
// Returns ErrCarrierNotFound when the carrier does not exist and
// ErrNoDriverAvailable when the carrier's driver pool is empty. Directory
// lookup failures surface as dependency errors: they block creation.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (CreateShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateShipmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateShipmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err := h.validateBatch(ctx, orderRepo, cmd.OrderIDs()); err != nil {
		return CreateShipmentResult{}, err
	}

	driver, err := h.selectDriver(ctx, cmd.CarrierID())
	if err != nil {
		return CreateShipmentResult{}, err
	}

	newShipment, err := shipment.NewShipment(kernel.NewUUID(), cmd.CarrierID(), driver.ID())
	if err != nil {
		return CreateShipmentResult{}, err
	}

	if err = uow.ShipmentRepository().Add(ctx, newShipment); err != nil {
		return CreateShipmentResult{}, err
	}

	linked, err := orderRepo.LinkToShipment(ctx, cmd.OrderIDs(), newShipment.ID(), cmd.CarrierID())
	if err != nil {
		return CreateShipmentResult{}, err
	}
	if linked != int64(len(cmd.OrderIDs())) {
		// An order changed state after validation; abandon the batch.
		return CreateShipmentResult{}, ErrOrderNotValid
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateShipmentResult{}, err
	}

	return CreateShipmentResult{
		ShipmentID:    newShipment.ID(),
		DriverID:      driver.ID(),
		CarrierID:     cmd.CarrierID(),
		OrdersUpdated: linked,
	}, nil
}

func (h CreateShipmentCommandHandler) selectDriver(ctx context.Context, carrierID kernel.UUID) (*carrier.Driver, error) {
	if _, err := h.carrierRepo.Get(ctx, carrierID); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, ErrCarrierNotFound
		}
		return nil, err
	}

	drivers, err := h.carrierRepo.GetDrivers(ctx, carrierID)
	if err != nil {
		return nil, err
	}

	driver := carrier.PickDriver(drivers)
	if driver == nil {
		return nil, ErrNoDriverAvailable
	}
	return driver, nil
}

// validateBatch rejects the whole batch before any mutation when an order
// is missing or not Pending.
func (h CreateShipmentCommandHandler) validateBatch(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	orderIDs []kernel.UUID,
) error {
	orders, err := orderRepo.GetBatch(ctx, orderIDs)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrOrderNotValid
		}
		return err
	}

	for _, o := range orders {
		if o.Status() != order.Pending {
			return ErrOrderNotValid
		}
	}
	return nil
}
