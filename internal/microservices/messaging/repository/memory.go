package repository

import (
	"context"
	"sync"

	"food-order/internal/microservices/messaging/models"
)

type MemoryMessageRepository struct {
	mu       sync.RWMutex
	messages []models.Message
}

func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{}
}

func (r *MemoryMessageRepository) Add(_ context.Context, m models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
	return nil
}

func (r *MemoryMessageRepository) ForUser(_ context.Context, userID string) ([]models.Message, error) {
	return r.filter(func(m models.Message) bool {
		return m.SenderID == userID || m.RecipientID == userID
	}), nil
}

func (r *MemoryMessageRepository) Between(_ context.Context, a, b string) ([]models.Message, error) {
	return r.filter(func(m models.Message) bool { return between(m, a, b) }), nil
}

func (r *MemoryMessageRepository) filter(keep func(models.Message) bool) []models.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Message{}
	for _, m := range r.messages {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func (r *MemoryMessageRepository) MarkRead(_ context.Context, reader, sender string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for i := range r.messages {
		m := &r.messages[i]
		if m.SenderID == sender && m.RecipientID == reader && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}

func (r *MemoryMessageRepository) DeleteBetween(_ context.Context, a, b string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	for _, m := range r.messages {
		if !between(m, a, b) {
			kept = append(kept, m)
		}
	}
	n := len(r.messages) - len(kept)
	clear(r.messages[len(kept):])
	r.messages = kept
	return n, nil
}

func between(m models.Message, a, b string) bool {
	return (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a)
}
