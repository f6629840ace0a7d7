package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const tickKey = "quiz:tick"

// TickClock keeps the current tick in Redis so it keeps counting across
// restarts, alongside the buckets scheduled against it.
type TickClock struct {
	client *redis.Client
}

func NewTickClock(client *redis.Client) *TickClock {
	return &TickClock{client: client}
}

func (c *TickClock) CurrentTick(ctx context.Context) (uint64, error) {
	v, err := c.client.Get(ctx, tickKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load tick: %w", err)
	}
	return v, nil
}

// Advance increments the stored tick and returns the new value.
func (c *TickClock) Advance(ctx context.Context) (uint64, error) {
	v, err := c.client.Incr(ctx, tickKey).Uint64()
	if err != nil {
		return 0, fmt.Errorf("advance tick: %w", err)
	}
	return v, nil
}
