package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trade-history-service/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// OrderCache implements ports.OrderCache using Redis. It caches full order
// snapshots (trades included) on the read path; the ingestion job invalidates
// an entry whenever it applies a newer snapshot.
type OrderCache struct {
	client *goredis.Client
	prefix string
}

// NewOrderCache creates a new Redis-backed order cache.
func NewOrderCache(client *goredis.Client) *OrderCache {
	return &OrderCache{
		client: client,
		prefix: "order:",
	}
}

// Get retrieves a cached order snapshot.
// Returns nil, nil if the key does not exist.
func (c *OrderCache) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	val, err := c.client.Get(ctx, c.prefix+id.String()).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis order get: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(val, &order); err != nil {
		return nil, fmt.Errorf("decode cached order: %w", err)
	}
	return &order, nil
}

// Set stores an order snapshot with TTL.
func (c *OrderCache) Set(ctx context.Context, order *domain.Order, ttl time.Duration) error {
	val, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+order.ID.String(), val, ttl).Err(); err != nil {
		return fmt.Errorf("redis order set: %w", err)
	}
	return nil
}

// Invalidate drops a cached snapshot. Missing keys are not an error.
func (c *OrderCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, c.prefix+id.String()).Err(); err != nil {
		return fmt.Errorf("redis order del: %w", err)
	}
	return nil
}
