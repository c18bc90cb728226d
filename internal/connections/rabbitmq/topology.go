package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationsQueue = "food.notifications"
	DeadLetterExchange = "food.dlx"
	DeadLetterQueue    = "food.dlq"
)

// DeclareTopology declares the events topic exchange, the durable notifications
// queue with its dead-letter route. Idempotent.
func (c *Client) DeclareTopology(exchange string) error {
	if c == nil || c.ch == nil {
		return fmt.Errorf("nil channel")
	}
	if err := c.ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", exchange, err)
	}
	if err := c.ch.ExchangeDeclare(DeadLetterExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DeadLetterExchange, err)
	}
	if _, err := c.ch.QueueDeclare(DeadLetterQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DeadLetterQueue, err)
	}
	if err := c.ch.QueueBind(DeadLetterQueue, DeadLetterQueue, DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", DeadLetterQueue, err)
	}
	if _, err := c.ch.QueueDeclare(NotificationsQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    DeadLetterExchange,
		"x-dead-letter-routing-key": DeadLetterQueue,
	}); err != nil {
		return fmt.Errorf("declare %s: %w", NotificationsQueue, err)
	}
	if err := c.ch.QueueBind(NotificationsQueue, "#", exchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", NotificationsQueue, err)
	}
	return nil
}

// DeclareInstanceQueue creates an exclusive auto-delete queue bound to keys on
// exchange, used to fan events out to every running API instance.
func (c *Client) DeclareInstanceQueue(exchange, name string, keys ...string) error {
	if _, err := c.ch.QueueDeclare(name, false, true, true, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", name, err)
	}
	for _, key := range keys {
		if err := c.ch.QueueBind(name, key, exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s to %s: %w", name, key, err)
		}
	}
	return nil
}
