package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"food-order/internal/common/apperr"
	"food-order/internal/common/events"
	"food-order/internal/common/ids"
	"food-order/internal/common/logger"
	identity "food-order/internal/microservices/identity/models"
	"food-order/internal/microservices/messaging/models"
	"food-order/internal/microservices/messaging/repository"
	wallet "food-order/internal/microservices/wallet/models"
)

const maxContentLen = 2000

var (
	ErrEmptyMessage = apperr.Field("content", "is required")
	ErrMessageSelf  = apperr.New(apperr.KindRule, "self_message", "Cannot message yourself")
)

type Directory interface {
	Lookup(ctx context.Context, id string) (identity.Profile, error)
}

// Transfers moves money between wallets.
type Transfers interface {
	Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, channel wallet.Channel) (wallet.Transaction, error)
}

type MessagingServiceInterface interface {
	Inbox(ctx context.Context, userID string) (models.Inbox, error)
	Thread(ctx context.Context, userID, otherID string) (models.Conversation, error)
	Send(ctx context.Context, userID, recipientID, content string) (models.Message, error)
	MarkRead(ctx context.Context, userID, otherID string) (int, error)
	DeleteThread(ctx context.Context, userID, otherID string) (int, error)
	SendMoney(ctx context.Context, userID, recipientID string, amount decimal.Decimal) (models.Message, wallet.Transaction, error)
	Subscribe(userID, with string) (<-chan models.StreamEvent, func())
	// Deliver hands an event published by another instance to local subscribers.
	Deliver(ev events.Event) error
}

type MessagingService struct {
	db        repository.MessageRepositoryInterface
	dir       Directory
	transfers Transfers
	pub       events.Publisher
	hub       *Hub
	now       func() time.Time
	lg        *logger.Logger
}

func NewMessagingService(db repository.MessageRepositoryInterface, dir Directory, transfers Transfers, pub events.Publisher, hub *Hub) *MessagingService {
	if pub == nil {
		pub = events.Discard{}
	}
	if hub == nil {
		hub = NewHub()
	}
	return &MessagingService{
		db:        db,
		dir:       dir,
		transfers: transfers,
		pub:       pub,
		hub:       hub,
		now:       func() time.Time { return time.Now().UTC() },
		lg:        logger.New("messaging"),
	}
}

// Inbox groups the user's messages by counterpart. Conversations are ordered
// by their latest message, newest first.
func (s *MessagingService) Inbox(ctx context.Context, userID string) (models.Inbox, error) {
	msgs, err := s.db.ForUser(ctx, userID)
	if err != nil {
		return models.Inbox{}, err
	}

	byPeer := map[string]*models.Conversation{}
	var order []string
	inbox := models.Inbox{Conversations: []models.Conversation{}}
	for _, m := range msgs {
		peer := m.Counterpart(userID)
		c, ok := byPeer[peer]
		if !ok {
			c = &models.Conversation{With: s.profile(ctx, peer)}
			byPeer[peer] = c
			order = append(order, peer)
		}
		c.Messages = append(c.Messages, m)
		if m.RecipientID == userID && !m.Read {
			c.Unread++
			inbox.Unread++
		}
	}
	for _, peer := range order {
		c := byPeer[peer]
		finish(c)
		inbox.Conversations = append(inbox.Conversations, *c)
	}
	sort.SliceStable(inbox.Conversations, func(i, j int) bool {
		return inbox.Conversations[i].LastMessageAt.After(inbox.Conversations[j].LastMessageAt)
	})
	return inbox, nil
}

func (s *MessagingService) Thread(ctx context.Context, userID, otherID string) (models.Conversation, error) {
	peer, err := s.dir.Lookup(ctx, otherID)
	if err != nil {
		return models.Conversation{}, err
	}
	msgs, err := s.db.Between(ctx, userID, otherID)
	if err != nil {
		return models.Conversation{}, err
	}
	c := models.Conversation{With: peer, Messages: msgs}
	for _, m := range msgs {
		if m.RecipientID == userID && !m.Read {
			c.Unread++
		}
	}
	finish(&c)
	return c, nil
}

// finish sorts a conversation chronologically and records its latest timestamp.
func finish(c *models.Conversation) {
	sort.SliceStable(c.Messages, func(i, j int) bool {
		return c.Messages[i].CreatedAt.Before(c.Messages[j].CreatedAt)
	})
	if c.Messages == nil {
		c.Messages = []models.Message{}
	}
	if n := len(c.Messages); n > 0 {
		c.LastMessageAt = c.Messages[n-1].CreatedAt
	}
}

func (s *MessagingService) profile(ctx context.Context, id string) identity.Profile {
	p, err := s.dir.Lookup(ctx, id)
	if err != nil {
		return identity.Profile{ID: id}
	}
	return p
}

func (s *MessagingService) Send(ctx context.Context, userID, recipientID, content string) (models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Message{}, ErrEmptyMessage
	}
	if len([]rune(content)) > maxContentLen {
		return models.Message{}, apperr.Field("content", "is too long")
	}
	if userID == recipientID {
		return models.Message{}, ErrMessageSelf
	}
	if _, err := s.dir.Lookup(ctx, recipientID); err != nil {
		return models.Message{}, err
	}
	return s.store(ctx, userID, recipientID, content)
}

func (s *MessagingService) store(ctx context.Context, userID, recipientID, content string) (models.Message, error) {
	m := models.Message{
		ID:          ids.New(),
		SenderID:    userID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   s.now(),
	}
	if err := s.db.Add(ctx, m); err != nil {
		return models.Message{}, err
	}
	s.announce(ctx, events.MessageSent, models.Notice{ActorID: userID, PeerID: recipientID, Message: &m})
	return m, nil
}

// MarkRead marks everything otherID sent to userID as read.
func (s *MessagingService) MarkRead(ctx context.Context, userID, otherID string) (int, error) {
	n, err := s.db.MarkRead(ctx, userID, otherID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.announce(ctx, events.MessageRead, models.Notice{ActorID: userID, PeerID: otherID, Count: n})
	}
	return n, nil
}

// DeleteThread removes the conversation for both participants.
func (s *MessagingService) DeleteThread(ctx context.Context, userID, otherID string) (int, error) {
	n, err := s.db.DeleteBetween(ctx, userID, otherID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.announce(ctx, events.ThreadDeleted, models.Notice{ActorID: userID, PeerID: otherID, Count: n})
	}
	return n, nil
}

// SendMoney transfers from the chat window and leaves a note in the thread.
func (s *MessagingService) SendMoney(ctx context.Context, userID, recipientID string, amount decimal.Decimal) (models.Message, wallet.Transaction, error) {
	tx, err := s.transfers.Transfer(ctx, userID, recipientID, amount, wallet.ChannelChat)
	if err != nil {
		return models.Message{}, wallet.Transaction{}, err
	}
	// the money has moved; a lost note is logged, not reported
	m, err := s.store(context.WithoutCancel(ctx), userID, recipientID, "Sent you $"+tx.Amount.StringFixed(2))
	if err != nil {
		logger.FromContext(ctx, s.lg).Error("transfer_note_failed", err, map[string]any{"transaction_id": tx.ID})
		return models.Message{}, tx, nil
	}
	return m, tx, nil
}

func (s *MessagingService) Subscribe(userID, with string) (<-chan models.StreamEvent, func()) {
	return s.hub.Subscribe(userID, with)
}

// announce notifies local subscribers at once and every other instance
// through the broker.
func (s *MessagingService) announce(ctx context.Context, typ string, n models.Notice) {
	s.hub.Dispatch(typ, n)
	events.Emit(ctx, s.pub, s.lg, typ, n)
}

func (s *MessagingService) Deliver(ev events.Event) error {
	switch ev.Type {
	case events.MessageSent, events.MessageRead, events.ThreadDeleted:
	default:
		return nil
	}
	var n models.Notice
	if err := ev.Decode(&n); err != nil {
		return err
	}
	s.hub.Dispatch(ev.Type, n)
	return nil
}
