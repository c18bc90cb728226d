package models

import (
	"time"

	identity "food-order/internal/microservices/identity/models"
)

type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
}

// Counterpart returns the other participant from userID's point of view.
func (m Message) Counterpart(userID string) string {
	if m.SenderID == userID {
		return m.RecipientID
	}
	return m.SenderID
}

// Conversation is every message between the caller and one other user,
// oldest first.
type Conversation struct {
	With          identity.Profile `json:"with"`
	Messages      []Message        `json:"messages"`
	Unread        int              `json:"unread"`
	LastMessageAt time.Time        `json:"last_message_at"`
}

type Inbox struct {
	Conversations []Conversation `json:"conversations"`
	Unread        int            `json:"unread"`
}

// Notice is what travels between instances: Actor did something involving
// Peer. Message is set for message.sent only.
type Notice struct {
	ActorID string   `json:"actor_id"`
	PeerID  string   `json:"peer_id"`
	Message *Message `json:"message,omitempty"`
	Count   int      `json:"count,omitempty"`
}

// StreamEvent is pushed to a subscribed user. With is the counterpart as seen
// by that user.
type StreamEvent struct {
	Type    string   `json:"type"`
	With    string   `json:"with"`
	Message *Message `json:"message,omitempty"`
}
