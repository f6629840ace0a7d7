package memory

import (
	"sync"

	"quiz-arena-service/internal/domain"
)

// EventBus fans committed events out to in-process subscribers.
type EventBus struct {
	mu          sync.Mutex
	buffer      int
	subscribers map[chan domain.Event]struct{}
}

func NewEventBus(buffer int) *EventBus {
	if buffer <= 0 {
		buffer = 16
	}
	return &EventBus{
		buffer:      buffer,
		subscribers: make(map[chan domain.Event]struct{}),
	}
}

// Subscribe returns a channel of future events.
// The caller must invoke the returned cancel function to avoid leaks.
func (b *EventBus) Subscribe() (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, b.buffer)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Emit delivers event to every subscriber without blocking. A full subscriber
// loses its oldest pending event.
func (b *EventBus) Emit(event domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- event
		}
	}
}

func (b *EventBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
