package service

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"food-order/internal/common/events"
	"food-order/internal/common/logger"
)

// DeliverySource opens a consumer on a queue.
type DeliverySource interface {
	Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, func(), error)
}

var ErrConsumerClosed = errors.New("notification consumer closed by broker")

type NotificatorService struct {
	source DeliverySource
	queue  string
	lg     *logger.Logger
}

func NewNotificatorService(source DeliverySource, queue string) *NotificatorService {
	return &NotificatorService{source: source, queue: queue, lg: logger.New("notification-subscriber")}
}

// Notify logs every event arriving on the queue until ctx ends. Undecodable
// messages are rejected so they land in the dead-letter queue.
func (ns *NotificatorService) Notify(ctx context.Context) error {
	msgChannel, stop, err := ns.source.Consume(ns.queue, "notificator", 10)
	if err != nil {
		return err
	}
	defer stop()

	ns.lg.Info("subscriber_started", map[string]any{"queue": ns.queue})
	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-msgChannel:
			if !ok {
				return ErrConsumerClosed
			}
			ns.handle(message)
		}
	}
}

func (ns *NotificatorService) handle(d amqp.Delivery) {
	var ev events.Event
	if err := json.Unmarshal(d.Body, &ev); err != nil || ev.Type == "" {
		if err == nil {
			err = errors.New("event without type")
		}
		ns.lg.Error("notification_rejected", err, map[string]any{"routing_key": d.RoutingKey})
		_ = d.Nack(false, false)
		return
	}

	fields := map[string]any{
		"event_id":    ev.ID,
		"event_type":  ev.Type,
		"origin":      ev.Origin,
		"occurred_at": ev.OccurredAt,
	}
	var payload map[string]any
	if err := json.Unmarshal(ev.Payload, &payload); err == nil {
		for _, k := range []string{"order_id", "user_id", "total", "amount", "from", "to", "actor_id", "peer_id"} {
			if v, ok := payload[k]; ok {
				fields[k] = v
			}
		}
	}
	ns.lg.Info("notification_received", fields)
	_ = d.Ack(false)
}
