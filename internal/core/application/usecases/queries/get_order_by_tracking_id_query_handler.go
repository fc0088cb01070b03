package queries

import (
	"context"
	"log/slog"

	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackingCache is a read-through cache over tracking lookups. Both methods
// are best-effort: a cache outage degrades to plain database reads.
type TrackingCache interface {
	GetOrder(ctx context.Context, trackingID string) (*OrderResponse, error)
	SetOrder(ctx context.Context, trackingID string, response OrderResponse) error
}

// GetOrderByTrackingIDQueryHandler serves tracking lookups from the cache
// when possible and from the database otherwise, refilling the cache after
// a miss.
type GetOrderByTrackingIDQueryHandler struct {
	db     *gorm.DB
	cache  TrackingCache
	logger *slog.Logger
}

// NewGetOrderByTrackingIDQueryHandler creates a handler for tracking lookups.
// A nil cache disables caching entirely.
func NewGetOrderByTrackingIDQueryHandler(db *gorm.DB, cache TrackingCache, logger *slog.Logger) GetOrderByTrackingIDQueryHandler {
	return GetOrderByTrackingIDQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With("component", "get_order_by_tracking_id_handler"),
	}
}

// Handle executes the tracking lookup.
// Returns ErrObjectNotFound when no order carries the tracking identifier.
func (h GetOrderByTrackingIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByTrackingIDQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	if cached := h.fromCache(ctx, query.TrackingID()); cached != nil {
		return *cached, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE tracking_id = ?
	`, query.TrackingID()).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("trackingId", query.TrackingID())
	}

	resp, err := scanOrderRow(rows)
	if err != nil {
		return OrderResponse{}, err
	}

	h.fillCache(ctx, query.TrackingID(), resp)
	return resp, nil
}

func (h GetOrderByTrackingIDQueryHandler) fromCache(ctx context.Context, trackingID string) *OrderResponse {
	if h.cache == nil {
		return nil
	}

	cached, err := h.cache.GetOrder(ctx, trackingID)
	if err != nil {
		h.logger.WarnContext(ctx, "tracking cache read failed, falling back to database",
			"trackingId", trackingID, "error", err)
		return nil
	}
	return cached
}

func (h GetOrderByTrackingIDQueryHandler) fillCache(ctx context.Context, trackingID string, resp OrderResponse) {
	if h.cache == nil {
		return
	}

	if err := h.cache.SetOrder(ctx, trackingID, resp); err != nil {
		h.logger.WarnContext(ctx, "tracking cache write failed",
			"trackingId", trackingID, "error", err)
	}
}
