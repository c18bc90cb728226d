package service

import (
	"sync"

	"food-order/internal/microservices/messaging/models"
)

const subscriberBuffer = 32

type subscriber struct {
	with string
	ch   chan models.StreamEvent
}

// Hub fans stream events out to the subscribers connected to this instance.
// Slow subscribers lose events rather than block senders.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

// Subscribe registers userID for events, narrowed to one counterpart when with
// is set. The returned func unsubscribes and closes the channel.
func (h *Hub) Subscribe(userID, with string) (<-chan models.StreamEvent, func()) {
	sub := &subscriber{with: with, ch: make(chan models.StreamEvent, subscriberBuffer)}

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*subscriber]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], sub)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(sub.ch)
		})
	}
}

// Publish delivers ev to every matching subscriber of userID.
func (h *Hub) Publish(userID string, ev models.StreamEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[userID] {
		if sub.with != "" && sub.with != ev.With {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// Dispatch turns a notice into events for both participants.
func (h *Hub) Dispatch(typ string, n models.Notice) {
	h.Publish(n.ActorID, models.StreamEvent{Type: typ, With: n.PeerID, Message: n.Message})
	if n.PeerID != n.ActorID {
		h.Publish(n.PeerID, models.StreamEvent{Type: typ, With: n.ActorID, Message: n.Message})
	}
}

func (h *Hub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}
