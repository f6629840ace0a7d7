package memory

import (
	"context"
	"sync"

	"quiz-arena-service/internal/domain"
)

// BucketStore is an in-memory implementation of app.BucketStore. Buckets are
// only allocated once something is scheduled into them.
type BucketStore struct {
	mu      sync.Mutex
	buckets map[domain.ID][]domain.ID
}

func NewBucketStore() *BucketStore {
	return &BucketStore{buckets: make(map[domain.ID][]domain.ID)}
}

func (s *BucketStore) Append(_ context.Context, bucket, quizID domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[bucket] = append(s.buckets[bucket], quizID)
	return nil
}

func (s *BucketStore) Load(_ context.Context, bucket domain.ID) ([]domain.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.buckets[bucket]
	return append([]domain.ID(nil), ids...), nil
}

func (s *BucketStore) Trim(_ context.Context, bucket domain.ID, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.buckets[bucket]
	if n >= len(ids) {
		delete(s.buckets, bucket)
		return nil
	}
	s.buckets[bucket] = append([]domain.ID(nil), ids[n:]...)
	return nil
}

// Pending reports how many buckets are waiting to fire.
func (s *BucketStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}
