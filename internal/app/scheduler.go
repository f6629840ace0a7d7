package app

import (
	"context"
	"fmt"

	"quiz-arena-service/internal/domain"
)

// BucketStore keeps the quiz IDs due for deletion, grouped by bucket ID.
type BucketStore interface {
	// Append adds quizID to the end of the bucket, creating the bucket if needed.
	Append(ctx context.Context, bucket, quizID domain.ID) error
	// Load returns the bucket contents in insertion order without removing them.
	Load(ctx context.Context, bucket domain.ID) ([]domain.ID, error)
	// Trim drops the first n entries. An emptied bucket is removed.
	Trim(ctx context.Context, bucket domain.ID, n int) error
}

// DeletionScheduler defers quiz deletion by a fixed number of ticks.
type DeletionScheduler struct {
	ids     IdentifierDeriver
	buckets BucketStore
	delay   uint64
}

// NewDeletionScheduler builds a scheduler. A zero delay is raised to one tick,
// since the bucket for the current tick has already fired.
func NewDeletionScheduler(ids IdentifierDeriver, buckets BucketStore, delay uint64) *DeletionScheduler {
	if delay == 0 {
		delay = 1
	}
	return &DeletionScheduler{ids: ids, buckets: buckets, delay: delay}
}

func (s *DeletionScheduler) Delay() uint64 {
	return s.delay
}

// Schedule queues quizID for deletion at currentTick+delay and returns that tick.
func (s *DeletionScheduler) Schedule(ctx context.Context, currentTick uint64, quizID domain.ID) (uint64, error) {
	due := currentTick + s.delay
	if err := s.buckets.Append(ctx, s.ids.BucketID(due), quizID); err != nil {
		return 0, fmt.Errorf("schedule deletion at tick %d: %w", due, err)
	}
	return due, nil
}

// Due lists the quizzes whose deletion falls at tick. Entries stay queued
// until they are settled.
func (s *DeletionScheduler) Due(ctx context.Context, tick uint64) ([]domain.ID, error) {
	ids, err := s.buckets.Load(ctx, s.ids.BucketID(tick))
	if err != nil {
		return nil, fmt.Errorf("load bucket for tick %d: %w", tick, err)
	}
	return ids, nil
}

// Settle removes the first n entries of tick's bucket once they are handled.
// Settling the whole bucket makes it fire no more.
func (s *DeletionScheduler) Settle(ctx context.Context, tick uint64, n int) error {
	if n <= 0 {
		return nil
	}
	if err := s.buckets.Trim(ctx, s.ids.BucketID(tick), n); err != nil {
		return fmt.Errorf("settle bucket for tick %d: %w", tick, err)
	}
	return nil
}
