// Package events carries domain events between services and out to the broker.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"food-order/internal/common/logger"
)

const (
	OrderPlaced     = "order.placed"
	WalletDeposit   = "wallet.deposit"
	WalletPayment   = "wallet.payment"
	WalletRefund    = "wallet.refund"
	WalletTransfer  = "wallet.transfer"
	MessageSent     = "message.sent"
	MessageRead     = "message.read"
	ThreadDeleted   = "thread.deleted"
	AccountSignedUp = "account.signed_up"
)

type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Origin     string          `json:"origin,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

func New(typ string, payload any) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: time.Now().UTC(),
		Payload:    body,
	}, nil
}

func (e Event) Decode(dst any) error { return json.Unmarshal(e.Payload, dst) }

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Discard drops every event; used when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *Recorder) Types() []string {
	evs := r.Events()
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}

// Emit publishes best-effort: a failure is logged and never reaches the caller,
// since the state change it describes has already been committed.
func Emit(ctx context.Context, pub Publisher, lg *logger.Logger, typ string, payload any) {
	if pub == nil {
		return
	}
	ev, err := New(typ, payload)
	if err == nil {
		err = pub.Publish(ctx, ev)
	}
	if err != nil {
		logger.FromContext(ctx, lg).Error("event_publish_failed", err, map[string]any{"event": typ})
	}
}
