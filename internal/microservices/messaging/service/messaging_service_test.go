package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-order/internal/common/apperr"
	"food-order/internal/common/events"
	identity "food-order/internal/microservices/identity/models"
	"food-order/internal/microservices/messaging/models"
	"food-order/internal/microservices/messaging/repository"
	walletrepo "food-order/internal/microservices/wallet/repository"
	walletsvc "food-order/internal/microservices/wallet/service"
)

type directory map[string]identity.Profile

func (d directory) Lookup(_ context.Context, id string) (identity.Profile, error) {
	if p, ok := d[id]; ok {
		return p, nil
	}
	return identity.Profile{}, apperr.NotFound("user")
}

func (d directory) FindByEmail(context.Context, string) (identity.Profile, error) {
	return identity.Profile{}, apperr.NotFound("user")
}

var people = directory{
	"ann": {ID: "ann", Name: "Ann", Email: "ann@x.com"},
	"bob": {ID: "bob", Name: "Bob", Email: "bob@x.com"},
	"cy":  {ID: "cy", Name: "Cy", Email: "cy@x.com"},
}

type fixture struct {
	svc     *MessagingService
	wallets *walletsvc.WalletService
	events  *events.Recorder
	clock   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		events: &events.Recorder{},
		clock:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.wallets = walletsvc.NewWalletService(walletrepo.NewMemoryLedgerRepository(), people, nil, 0, 0)
	f.svc = NewMessagingService(repository.NewMemoryMessageRepository(), people, f.wallets, f.events, nil)
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}
	return f
}

func TestInboxGroupsAndOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Send(ctx, "bob", "ann", "hi ann")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, "cy", "ann", "hello from cy")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, "ann", "bob", "hey bob")
	require.NoError(t, err)

	inbox, err := f.svc.Inbox(ctx, "ann")
	require.NoError(t, err)
	require.Len(t, inbox.Conversations, 2)
	assert.Equal(t, 2, inbox.Unread)

	// bob has the latest message
	bob := inbox.Conversations[0]
	assert.Equal(t, "Bob", bob.With.Name)
	require.Len(t, bob.Messages, 2)
	assert.Equal(t, "hi ann", bob.Messages[0].Content)
	assert.Equal(t, "hey bob", bob.Messages[1].Content)
	assert.Equal(t, 1, bob.Unread)
	assert.Equal(t, bob.Messages[1].CreatedAt, bob.LastMessageAt)
	assert.Equal(t, "cy", inbox.Conversations[1].With.ID)
}

func TestSendValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Send(ctx, "ann", "bob", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = f.svc.Send(ctx, "ann", "ghost", "hi")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = f.svc.Send(ctx, "ann", "ann", "hi")
	assert.ErrorIs(t, err, ErrMessageSelf)

	m, err := f.svc.Send(ctx, "ann", "bob", "  trimmed  ")
	require.NoError(t, err)
	assert.Equal(t, "trimmed", m.Content)
	assert.False(t, m.Read)
}

func TestMarkReadOnlyInbound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Send(ctx, "bob", "ann", "one")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, "bob", "ann", "two")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, "ann", "bob", "reply")
	require.NoError(t, err)

	n, err := f.svc.MarkRead(ctx, "ann", "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	inbox, _ := f.svc.Inbox(ctx, "ann")
	assert.Zero(t, inbox.Unread)
	bobInbox, _ := f.svc.Inbox(ctx, "bob")
	assert.Equal(t, 1, bobInbox.Unread, "ann's reply is still unread for bob")

	n, err = f.svc.MarkRead(ctx, "ann", "bob")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteThreadIsSymmetric(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Send(ctx, "ann", "bob", "a")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, "bob", "ann", "b")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, "cy", "ann", "c")
	require.NoError(t, err)

	n, err := f.svc.DeleteThread(ctx, "bob", "ann")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	annInbox, _ := f.svc.Inbox(ctx, "ann")
	require.Len(t, annInbox.Conversations, 1)
	assert.Equal(t, "cy", annInbox.Conversations[0].With.ID)
	bobInbox, _ := f.svc.Inbox(ctx, "bob")
	assert.Empty(t, bobInbox.Conversations)

	thread, err := f.svc.Thread(ctx, "ann", "bob")
	require.NoError(t, err)
	assert.Empty(t, thread.Messages)
}

func TestSendMoneyLeavesNote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.wallets.Deposit(ctx, "ann", decimal.NewFromInt(20))
	require.NoError(t, err)

	m, tx, err := f.svc.SendMoney(ctx, "ann", "bob", decimal.RequireFromString("7.5"))
	require.NoError(t, err)
	assert.Equal(t, "Sent you $7.50", m.Content)
	assert.Equal(t, "chat", string(tx.Channel))

	bal, _ := f.wallets.Balance(ctx, "bob")
	assert.Equal(t, "7.50", bal.StringFixed(2))

	_, _, err = f.svc.SendMoney(ctx, "ann", "bob", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, walletsvc.ErrInsufficientBalance)
	thread, _ := f.svc.Thread(ctx, "bob", "ann")
	assert.Len(t, thread.Messages, 1, "no note without a transfer")
}

func TestSubscribersReceiveEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	annAll, stopAnn := f.svc.Subscribe("ann", "")
	defer stopAnn()
	bobWithCy, stopBob := f.svc.Subscribe("bob", "cy")
	defer stopBob()

	m, err := f.svc.Send(ctx, "bob", "ann", "ping")
	require.NoError(t, err)

	select {
	case ev := <-annAll:
		assert.Equal(t, events.MessageSent, ev.Type)
		assert.Equal(t, "bob", ev.With)
		require.NotNil(t, ev.Message)
		assert.Equal(t, m.ID, ev.Message.ID)
	case <-time.After(time.Second):
		t.Fatal("ann got no event")
	}

	select {
	case ev := <-bobWithCy:
		t.Fatalf("narrowed subscription got %v", ev)
	default:
	}
	assert.Equal(t, []string{events.MessageSent}, f.events.Types())
}

func TestDeliverFromOtherInstance(t *testing.T) {
	f := newFixture(t)
	ch, stop := f.svc.Subscribe("bob", "")
	defer stop()

	ev, err := events.New(events.ThreadDeleted, models.Notice{ActorID: "ann", PeerID: "bob", Count: 3})
	require.NoError(t, err)
	require.NoError(t, f.svc.Deliver(ev))

	got := <-ch
	assert.Equal(t, models.StreamEvent{Type: events.ThreadDeleted, With: "ann"}, got)

	// unrelated events are ignored
	other, _ := events.New(events.OrderPlaced, map[string]string{"order_id": "x"})
	assert.NoError(t, f.svc.Deliver(other))
}
