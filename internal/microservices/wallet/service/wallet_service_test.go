package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-order/internal/common/apperr"
	"food-order/internal/common/events"
	identity "food-order/internal/microservices/identity/models"
	"food-order/internal/microservices/wallet/models"
	"food-order/internal/microservices/wallet/repository"
)

type fakeDirectory map[string]identity.Profile

func (d fakeDirectory) Lookup(_ context.Context, id string) (identity.Profile, error) {
	p, ok := d[id]
	if !ok {
		return identity.Profile{}, apperr.NotFound("user")
	}
	return p, nil
}

func (d fakeDirectory) FindByEmail(_ context.Context, email string) (identity.Profile, error) {
	for _, p := range d {
		if p.Email == email {
			return p, nil
		}
	}
	return identity.Profile{}, apperr.New(apperr.KindNotFound, "user_not_found", "User not found")
}

var dir = fakeDirectory{
	"ann": {ID: "ann", Name: "Ann", Email: "ann@x.com"},
	"bob": {ID: "bob", Name: "Bob", Email: "bob@x.com"},
}

func newWallet(t *testing.T) (*WalletService, *events.Recorder) {
	t.Helper()
	rec := &events.Recorder{}
	return NewWalletService(repository.NewMemoryLedgerRepository(), dir, rec, 0, 0), rec
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDepositAndBalance(t *testing.T) {
	ctx := context.Background()
	s, rec := newWallet(t)

	bal, err := s.Balance(ctx, "ann")
	require.NoError(t, err)
	assert.True(t, bal.IsZero())

	tx, err := s.Deposit(ctx, "ann", dec("20"))
	require.NoError(t, err)
	assert.Equal(t, models.KindDeposit, tx.Kind)
	assert.Empty(t, tx.From)

	bal, err = s.Balance(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, "20.00", bal.StringFixed(2))
	assert.Equal(t, []string{events.WalletDeposit}, rec.Types())
}

func TestDepositRejectsNonPositive(t *testing.T) {
	s, _ := newWallet(t)
	for _, a := range []string{"0", "-5", "0.001"} {
		_, err := s.Deposit(context.Background(), "ann", dec(a))
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), a)
	}
}

func TestPayInsufficientLeavesBalance(t *testing.T) {
	ctx := context.Background()
	s, _ := newWallet(t)
	_, err := s.Deposit(ctx, "ann", dec("20"))
	require.NoError(t, err)

	_, err = s.Pay(ctx, "ann", dec("25"), "order-1")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, "Insufficient balance", err.Error())

	bal, _ := s.Balance(ctx, "ann")
	assert.Equal(t, "20.00", bal.StringFixed(2))

	tx, err := s.Pay(ctx, "ann", dec("20"), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", tx.Reference)
	bal, _ = s.Balance(ctx, "ann")
	assert.True(t, bal.IsZero())
}

func TestSubCentAmountsAreRefused(t *testing.T) {
	ctx := context.Background()
	s, _ := newWallet(t)
	_, err := s.Deposit(ctx, "ann", dec("20"))
	require.NoError(t, err)

	_, err = s.Transfer(ctx, "ann", "bob", dec("20.004"), models.ChannelWallet)
	assert.ErrorIs(t, err, ErrAmountPrecision)
	_, err = s.Pay(ctx, "ann", dec("20.004"), "order-1")
	assert.ErrorIs(t, err, ErrAmountPrecision)
	_, _, err = s.TransferToEmail(ctx, "ann", "bob@x.com", decimal.NewFromFloat(20.004))
	assert.ErrorIs(t, err, ErrAmountPrecision)
	_, err = s.Refund(ctx, "ann", dec("0.005"), "order-1")
	assert.ErrorIs(t, err, ErrAmountPrecision)

	ann, _ := s.Balance(ctx, "ann")
	bob, _ := s.Balance(ctx, "bob")
	assert.Equal(t, "20.00", ann.StringFixed(2))
	assert.True(t, bob.IsZero())

	// trailing zeros are still whole cents
	_, err = s.Pay(ctx, "ann", dec("20.000"), "order-2")
	require.NoError(t, err)
}

func TestRefundCreditsUser(t *testing.T) {
	ctx := context.Background()
	s, _ := newWallet(t)
	tx, err := s.Refund(ctx, "ann", dec("12.50"), "order-9")
	require.NoError(t, err)
	assert.Equal(t, models.KindRefund, tx.Kind)
	bal, _ := s.Balance(ctx, "ann")
	assert.Equal(t, "12.50", bal.StringFixed(2))
}

func TestTransferMovesMoneyOnce(t *testing.T) {
	ctx := context.Background()
	s, _ := newWallet(t)
	_, err := s.Deposit(ctx, "ann", dec("50"))
	require.NoError(t, err)

	tx, err := s.Transfer(ctx, "ann", "bob", dec("30"), models.ChannelWallet)
	require.NoError(t, err)
	assert.Equal(t, models.KindTransfer, tx.Kind)

	annBal, _ := s.Balance(ctx, "ann")
	bobBal, _ := s.Balance(ctx, "bob")
	assert.Equal(t, "20.00", annBal.StringFixed(2))
	assert.Equal(t, "30.00", bobBal.StringFixed(2))

	annHist, err := s.History(ctx, "ann")
	require.NoError(t, err)
	bobHist, err := s.History(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, annHist, 2)
	require.Len(t, bobHist, 1)
	assert.Equal(t, tx.ID, bobHist[0].ID)
}

func TestTransferRules(t *testing.T) {
	ctx := context.Background()
	s, _ := newWallet(t)
	_, err := s.Deposit(ctx, "ann", dec("20"))
	require.NoError(t, err)

	_, err = s.Transfer(ctx, "ann", "ann", dec("5"), models.ChannelWallet)
	assert.ErrorIs(t, err, ErrSelfTransfer)

	_, err = s.Transfer(ctx, "ann", "ghost", dec("5"), models.ChannelWallet)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = s.Transfer(ctx, "ann", "bob", dec("25"), models.ChannelChat)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	bal, _ := s.Balance(ctx, "ann")
	assert.Equal(t, "20.00", bal.StringFixed(2))
	bob, _ := s.Balance(ctx, "bob")
	assert.True(t, bob.IsZero())
}

func TestTransferToEmail(t *testing.T) {
	ctx := context.Background()
	s, _ := newWallet(t)
	_, err := s.Deposit(ctx, "bob", dec("10"))
	require.NoError(t, err)

	tx, to, err := s.TransferToEmail(ctx, "bob", "ann@x.com", dec("4"))
	require.NoError(t, err)
	assert.Equal(t, "Ann", to.Name)
	assert.Equal(t, models.ChannelWallet, tx.Channel)

	_, _, err = s.TransferToEmail(ctx, "bob", "nobody@x.com", dec("4"))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestConcurrentTransfersNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	s, _ := newWallet(t)
	_, err := s.Deposit(ctx, "ann", dec("100"))
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Transfer(ctx, "ann", "bob", dec("3"), models.ChannelWallet); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 33, ok)
	ann, _ := s.Balance(ctx, "ann")
	bob, _ := s.Balance(ctx, "bob")
	assert.Equal(t, "1.00", ann.StringFixed(2))
	assert.Equal(t, "99.00", bob.StringFixed(2))
}
