package memory

import (
	"testing"

	"quiz-arena-service/internal/domain"
)

func TestEventBusDeliversToSubscribers(t *testing.T) {
	bus := NewEventBus(4)
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Emit(domain.QuizCreated(1, "alice", 2))
	got := <-ch
	if got.Type != domain.EventQuizCreated || got.Sequence != 1 || got.Account != "alice" {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestEventBusDropsStaleForSlowSubscriber(t *testing.T) {
	bus := NewEventBus(1)
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Emit(domain.QuizScored(1, "bob", 3))
	bus.Emit(domain.QuizScored(2, "bob", 4))

	got := <-ch
	if got.Sequence != 2 {
		t.Fatalf("expected newest event to survive, got %+v", got)
	}
}

func TestEventBusCancelUnsubscribes(t *testing.T) {
	bus := NewEventBus(1)
	ch, cancel := bus.Subscribe()
	cancel()
	cancel()

	if bus.Subscribers() != 0 {
		t.Fatalf("expected no subscribers")
	}
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	bus.Emit(domain.QuizCreated(1, "alice", 0))
}
