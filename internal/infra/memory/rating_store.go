package memory

import (
	"context"
	"sync"

	"quiz-arena-service/internal/domain"
)

// RatingStore is an in-memory implementation of app.RatingStore.
type RatingStore struct {
	mu      sync.RWMutex
	ratings map[domain.AccountID]uint8
}

func NewRatingStore() *RatingStore {
	return &RatingStore{ratings: make(map[domain.AccountID]uint8)}
}

func (s *RatingStore) GetRating(_ context.Context, account domain.AccountID) (uint8, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ratings[account], nil
}

func (s *RatingStore) SetRating(_ context.Context, account domain.AccountID, rating uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[account] = rating
	return nil
}
