package event

import "quiz-arena-service/internal/domain"

// Sink is anything that accepts committed events.
type Sink interface {
	Emit(event domain.Event)
}

// Fanout delivers each event to every sink in order.
type Fanout []Sink

func (f Fanout) Emit(event domain.Event) {
	for _, sink := range f {
		if sink != nil {
			sink.Emit(event)
		}
	}
}

// LogSink writes events through the standard logger.
type LogSink struct {
	Logf func(format string, args ...any)
}

func (s LogSink) Emit(event domain.Event) {
	s.Logf("event %s sequence=%d account=%s score=%d tick=%d", event.Type, event.Sequence, event.Account, event.Score, event.Tick)
}
