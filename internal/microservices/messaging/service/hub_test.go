package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"food-order/internal/microservices/messaging/models"
)

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	ch, stop := h.Subscribe("ann", "")
	assert.Equal(t, 1, h.Subscribers("ann"))

	stop()
	stop()
	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, h.Subscribers("ann"))

	// publishing to nobody is fine
	h.Publish("ann", models.StreamEvent{Type: "message.sent"})
}

func TestHubDropsWhenFull(t *testing.T) {
	h := NewHub()
	ch, stop := h.Subscribe("ann", "")
	defer stop()
	for i := 0; i < subscriberBuffer+10; i++ {
		h.Publish("ann", models.StreamEvent{Type: "message.sent", With: "bob"})
	}
	assert.Len(t, ch, subscriberBuffer)
}
