package memory

import (
	"context"
	"sync/atomic"
)

// TickClock is a process-local tick counter.
type TickClock struct {
	tick atomic.Uint64
}

// NewTickClock starts the clock at start.
func NewTickClock(start uint64) *TickClock {
	c := &TickClock{}
	c.tick.Store(start)
	return c
}

func (c *TickClock) CurrentTick(context.Context) (uint64, error) {
	return c.tick.Load(), nil
}

// Advance moves the clock forward by one tick and returns the new tick.
func (c *TickClock) Advance(context.Context) (uint64, error) {
	return c.tick.Add(1), nil
}
