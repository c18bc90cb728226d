package messaging

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"food-order/internal/common/events"
	"food-order/internal/common/logger"
	"food-order/internal/connections/rabbitmq"
)

// relayKeys are the event types other instances need to see.
var relayKeys = []string{"message.*", "thread.*"}

// Relay feeds messaging events published by other API instances into the local
// hub. Events that this instance published itself are skipped; they were
// delivered when they happened.
func (m *Module) Relay(ctx context.Context, client *rabbitmq.Client, exchange, instanceID string) error {
	lg := logger.New("messaging-relay")
	queue := "food.relay." + instanceID
	if err := client.DeclareInstanceQueue(exchange, queue, relayKeys...); err != nil {
		return err
	}
	deliveries, stop, err := client.Consume(queue, queue, 50)
	if err != nil {
		return err
	}

	go func() {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					lg.Warn("relay_channel_closed", nil)
					return
				}
				m.relayOne(lg, instanceID, d)
			}
		}
	}()
	lg.Info("relay_started", map[string]any{"queue": queue})
	return nil
}

func (m *Module) relayOne(lg *logger.Logger, instanceID string, d amqp.Delivery) {
	var ev events.Event
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		lg.Error("relay_decode_failed", err, map[string]any{"routing_key": d.RoutingKey})
		_ = d.Nack(false, false)
		return
	}
	if ev.Origin != instanceID {
		if err := m.Service.MessagingService.Deliver(ev); err != nil {
			lg.Error("relay_deliver_failed", err, map[string]any{"event_id": ev.ID})
		}
	}
	_ = d.Ack(false)
}
