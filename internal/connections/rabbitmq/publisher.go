package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"food-order/internal/common/events"
)

// EventPublisher routes domain events to a topic exchange by event type.
// Events leave stamped with the publisher's source so consumers on the same
// instance can recognise their own events.
type EventPublisher struct {
	client   *Client
	exchange string
	source   string
	timeout  time.Duration
}

func NewEventPublisher(client *Client, exchange, source string) *EventPublisher {
	return &EventPublisher{client: client, exchange: exchange, source: source, timeout: 5 * time.Second}
}

func (p *EventPublisher) Publish(ctx context.Context, ev events.Event) error {
	if ev.Origin == "" {
		ev.Origin = p.source
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.client.Publish(ctx, p.exchange, ev.Type, body, amqp.Table{
		"x-source":   p.source,
		"x-event-id": ev.ID,
	}, "application/json", true)
}
