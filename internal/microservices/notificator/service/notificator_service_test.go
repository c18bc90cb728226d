package service

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-order/internal/common/events"
	"food-order/internal/common/logger"
)

type ackRecorder struct {
	acked, nacked []uint64
}

func (a *ackRecorder) Ack(tag uint64, _ bool) error { a.acked = append(a.acked, tag); return nil }
func (a *ackRecorder) Nack(tag uint64, _, _ bool) error {
	a.nacked = append(a.nacked, tag)
	return nil
}
func (a *ackRecorder) Reject(tag uint64, _ bool) error { a.nacked = append(a.nacked, tag); return nil }

type chanSource struct{ ch chan amqp.Delivery }

func (s chanSource) Consume(string, string, int) (<-chan amqp.Delivery, func(), error) {
	return s.ch, func() {}, nil
}

func TestNotifyAcksEventsAndRejectsGarbage(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })

	acks := &ackRecorder{}
	src := chanSource{ch: make(chan amqp.Delivery, 2)}

	ev, err := events.New(events.OrderPlaced, map[string]any{"order_id": "ORDER-1", "total": "32"})
	require.NoError(t, err)
	body, _ := json.Marshal(ev)
	src.ch <- amqp.Delivery{Acknowledger: acks, DeliveryTag: 1, Body: body, RoutingKey: events.OrderPlaced}
	src.ch <- amqp.Delivery{Acknowledger: acks, DeliveryTag: 2, Body: []byte("not json")}
	close(src.ch)

	err = NewNotificatorService(src, "q").Notify(context.Background())
	assert.ErrorIs(t, err, ErrConsumerClosed)
	assert.Equal(t, []uint64{1}, acks.acked)
	assert.Equal(t, []uint64{2}, acks.nacked)
	assert.Contains(t, buf.String(), `"order_id":"ORDER-1"`)
}

func TestNotifyStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := NewNotificatorService(chanSource{ch: make(chan amqp.Delivery)}, "q").Notify(ctx)
	assert.NoError(t, err)
}
