package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const sequenceKey = "quiz:sequence"

// Sequence stores the last issued quiz sequence number. Writers are expected
// to be serialized by the quiz service.
type Sequence struct {
	client *redis.Client
}

func NewSequence(client *redis.Client) *Sequence {
	return &Sequence{client: client}
}

func (s *Sequence) Current(ctx context.Context) (uint64, error) {
	v, err := s.client.Get(ctx, sequenceKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load sequence: %w", err)
	}
	return v, nil
}

func (s *Sequence) Set(ctx context.Context, sequence uint64) error {
	return s.client.Set(ctx, sequenceKey, sequence, 0).Err()
}
