// Package redis caches tracking lookups in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
)

const trackingKeyPrefix = "tracking:order:"

// Entries for terminal orders never change again, so they stay cached an
// order of magnitude longer than in-flight ones.
const terminalTTLFactor = 12

// NewClient connects a Redis client for the given address.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// TrackingCache stores tracking projections in Redis under a per-order key.
// It implements queries.TrackingCache.
type TrackingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTrackingCache creates a TrackingCache with the given base entry
// lifetime for orders still moving.
func NewTrackingCache(client *redis.Client, ttl time.Duration) *TrackingCache {
	return &TrackingCache{client: client, ttl: ttl}
}

// GetOrder returns the cached projection, or nil on a miss.
func (c *TrackingCache) GetOrder(ctx context.Context, trackingID string) (*queries.OrderResponse, error) {
	raw, err := c.client.Get(ctx, trackingKey(trackingID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp queries.OrderResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetOrder stores the projection under the tracking key.
func (c *TrackingCache) SetOrder(ctx context.Context, trackingID string, response queries.OrderResponse) error {
	raw, err := json.Marshal(response)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, trackingKey(trackingID), raw, c.ttlFor(response)).Err()
}

func (c *TrackingCache) ttlFor(response queries.OrderResponse) time.Duration {
	status, err := order.StatusFromString(response.Status)
	if err != nil || !status.IsTerminal() {
		return c.ttl
	}
	return c.ttl * terminalTTLFactor
}

func trackingKey(trackingID string) string {
	return fmt.Sprintf("%s%s", trackingKeyPrefix, trackingID)
}
