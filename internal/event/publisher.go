package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"quiz-arena-service/internal/domain"
)

// Publisher forwards quiz events to a RabbitMQ topic exchange. Emit only
// queues the event; a background loop does the network I/O, so a slow or
// unreachable broker never holds up a quiz command.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	enabled  bool

	mu     sync.RWMutex
	closed bool
	queue  chan domain.Event
	done   chan struct{}
}

// NewPublisher connects to url and declares exchange. An empty url yields a
// disabled publisher that drops every event.
func NewPublisher(url, exchange string, buffer int) (*Publisher, error) {
	if url == "" {
		log.Println("amqp url is empty, event publishing is disabled")
		return &Publisher{enabled: false}, nil
	}
	if buffer <= 0 {
		buffer = 256
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		enabled:  true,
		queue:    make(chan domain.Event, buffer),
		done:     make(chan struct{}),
	}
	go p.loop()
	return p, nil
}

func (p *Publisher) Emit(event domain.Event) {
	if !p.enabled {
		return
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.queue <- event:
	default:
		log.Printf("event queue full, dropping %s event", event.Type)
	}
}

func (p *Publisher) loop() {
	defer close(p.done)
	for event := range p.queue {
		if err := p.publish(event); err != nil {
			log.Printf("publish %s event: %v", event.Type, err)
		}
	}
}

func (p *Publisher) publish(event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		RoutingKey(event.Type),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   uuid.NewString(),
			Timestamp:   time.Now().UTC(),
			Body:        body,
		},
	)
}

// Close flushes queued events and closes the connection.
func (p *Publisher) Close() error {
	if !p.enabled {
		return nil
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	_ = p.channel.Close()
	return p.conn.Close()
}

// RoutingKey maps an event type to its topic routing key.
func RoutingKey(t domain.EventType) string {
	return "quiz." + string(t)
}
