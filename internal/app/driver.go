package app

import (
	"context"
	"fmt"
	"log"
	"time"
)

// TickSource is a Clock the driver can move forward.
type TickSource interface {
	Clock
	Advance(ctx context.Context) (uint64, error)
}

// Driver advances the clock on a fixed interval and runs the per-tick hook
// for every new tick. A tick whose hook failed is retried before the clock
// moves on, so no tick is skipped.
type Driver struct {
	service  *QuizService
	clock    TickSource
	interval time.Duration

	failed  bool
	pending uint64
}

func NewDriver(service *QuizService, clock TickSource, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = 6 * time.Second
	}
	return &Driver{service: service, clock: clock, interval: interval}
}

// Run blocks until ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("tick driver stopped after tick %d", d.pending)
			return nil
		case <-ticker.C:
			tick, removed, err := d.Step(ctx)
			if err != nil {
				log.Printf("tick %d failed: %v", tick, err)
				continue
			}
			if removed > 0 {
				log.Printf("tick %d: deleted %d expired quizzes", tick, removed)
			}
		}
	}
}

// Step advances the clock by one tick and fires that tick's deletions. After a
// failure the same tick is fired again instead.
func (d *Driver) Step(ctx context.Context) (uint64, int, error) {
	tick := d.pending
	if !d.failed {
		next, err := d.clock.Advance(ctx)
		if err != nil {
			return tick, 0, fmt.Errorf("advance clock: %w", err)
		}
		tick = next
	}
	removed, err := d.service.OnTick(ctx, tick)
	d.failed = err != nil
	d.pending = tick
	return tick, removed, err
}
