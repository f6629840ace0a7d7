package memory

import (
	"context"
	"sync/atomic"
)

// Sequence is an in-memory app.SequenceCounter.
type Sequence struct {
	v atomic.Uint64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) Current(context.Context) (uint64, error) {
	return s.v.Load(), nil
}

func (s *Sequence) Set(_ context.Context, sequence uint64) error {
	s.v.Store(sequence)
	return nil
}
