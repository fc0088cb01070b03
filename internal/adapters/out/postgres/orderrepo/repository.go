package orderrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
//
// The state-precondition writes (AssignCarrier, LinkToShipment) put the
// precondition into the UPDATE's WHERE clause, so the database arbitrates
// concurrent writers instead of a read-then-write in Go.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
// A duplicate ID or tracking ID surfaces as a conflict.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errs.NewConflictErrorWithCause("orderId", aggregate.ID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database, writing every column so
// cleared optional fields (proof, error message) become NULL again.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBatch retrieves all orders for the given identifiers.
func (r *GormOrderRepository) GetBatch(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]OrderDTO, len(dtos))
	for _, dto := range dtos {
		found[dto.ID] = dto
	}

	orders := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		dto, ok := found[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}

		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// AssignCarrier sets the carrier on an order that has none yet.
func (r *GormOrderRepository) AssignCarrier(ctx context.Context, orderID, carrierID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), carrierID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND carrier_id IS NULL", orderID.Bytes()).
		Update("carrier_id", carrierID.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		return nil
	}

	// Zero rows: the order is missing or already has a carrier.
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", orderID.Bytes()).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("orderId", orderID.String())
	}

	return errs.NewConflictError("carrierId", orderID.String())
}

// LinkToShipment points every listed unlinked Pending order at the
// shipment. An order already belonging to a shipment is left alone, same
// rule the aggregate enforces, so the caller's affected-rows check catches
// it.
func (r *GormOrderRepository) LinkToShipment(
	ctx context.Context,
	orderIDs []kernel.UUID,
	shipmentID, carrierID kernel.UUID,
) (int64, error) {
	if err := errors.Join(shipmentID.Validate(), carrierID.Validate()); err != nil {
		return 0, err
	}

	raw := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return 0, err
		}
		raw = append(raw, id.Bytes())
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id IN ? AND status = ? AND shipment_id IS NULL", raw, order.Pending.String()).
		Updates(map[string]any{
			"shipment_id": shipmentID.Bytes(),
			"carrier_id":  carrierID.Bytes(),
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// CountByShipment returns a shipment's member count and how many members
// are InTransit, in one round trip so both numbers come from the same
// snapshot.
func (r *GormOrderRepository) CountByShipment(
	ctx context.Context, shipmentID kernel.UUID,
) (total, inTransit int64, err error) {
	if err = shipmentID.Validate(); err != nil {
		return 0, 0, err
	}

	row := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?)
		FROM orders
		WHERE shipment_id = ?
	`, order.InTransit.String(), shipmentID.Bytes()).Row()

	if err = row.Scan(&total, &inTransit); err != nil {
		return 0, 0, err
	}

	return total, inTransit, nil
}
