package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quiz-arena-service/internal/domain"
)

const ratingsKey = "quiz:ratings"

// RatingStore keeps ratings in a single hash: HSET quiz:ratings {account} {rating}
type RatingStore struct {
	client *redis.Client
}

func NewRatingStore(client *redis.Client) *RatingStore {
	return &RatingStore{client: client}
}

func (s *RatingStore) GetRating(ctx context.Context, account domain.AccountID) (uint8, error) {
	v, err := s.client.HGet(ctx, ratingsKey, string(account)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load rating: %w", err)
	}
	if v > 255 {
		v = 255
	}
	return uint8(v), nil
}

func (s *RatingStore) SetRating(ctx context.Context, account domain.AccountID, rating uint8) error {
	return s.client.HSet(ctx, ratingsKey, string(account), rating).Err()
}
