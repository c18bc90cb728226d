package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"food-order/internal/common/apperr"
	"food-order/internal/common/events"
	"food-order/internal/common/ids"
	"food-order/internal/common/logger"
	"food-order/internal/common/simulate"
	identity "food-order/internal/microservices/identity/models"
	"food-order/internal/microservices/wallet/models"
	"food-order/internal/microservices/wallet/repository"
)

var (
	ErrInsufficientBalance = apperr.New(apperr.KindRule, "insufficient_balance", "Insufficient balance")
	ErrSelfTransfer        = apperr.New(apperr.KindRule, "self_transfer", "Cannot transfer to yourself")
	ErrInvalidAmount       = apperr.Field("amount", "must be greater than 0")
	ErrAmountPrecision     = apperr.Field("amount", "must have at most 2 decimal places")
)

// checkAmount accepts positive amounts in whole cents. Sub-cent amounts are
// refused rather than rounded, so a balance check always sees the real amount.
func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return ErrAmountPrecision
	}
	return nil
}

// Directory finds the accounts money can be sent to.
type Directory interface {
	Lookup(ctx context.Context, id string) (identity.Profile, error)
	FindByEmail(ctx context.Context, email string) (identity.Profile, error)
}

type WalletServiceInterface interface {
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
	Summary(ctx context.Context, userID string) (models.Summary, error)
	History(ctx context.Context, userID string) ([]models.Transaction, error)
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (models.Transaction, error)
	Pay(ctx context.Context, userID string, amount decimal.Decimal, orderID string) (models.Transaction, error)
	Refund(ctx context.Context, userID string, amount decimal.Decimal, orderID string) (models.Transaction, error)
	Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, channel models.Channel) (models.Transaction, error)
	TransferToEmail(ctx context.Context, fromID, email string, amount decimal.Decimal) (models.Transaction, identity.Profile, error)
}

type WalletService struct {
	ledger        repository.LedgerRepositoryInterface
	dir           Directory
	pub           events.Publisher
	depositDelay  time.Duration
	transferDelay time.Duration
	now           func() time.Time
	lg            *logger.Logger
}

func NewWalletService(ledger repository.LedgerRepositoryInterface, dir Directory, pub events.Publisher, depositDelay, transferDelay time.Duration) *WalletService {
	if pub == nil {
		pub = events.Discard{}
	}
	return &WalletService{
		ledger:        ledger,
		dir:           dir,
		pub:           pub,
		depositDelay:  depositDelay,
		transferDelay: transferDelay,
		now:           func() time.Time { return time.Now().UTC() },
		lg:            logger.New("wallet"),
	}
}

func (s *WalletService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.ledger.Balance(ctx, userID)
}

func (s *WalletService) History(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.ledger.History(ctx, userID)
}

func (s *WalletService) Summary(ctx context.Context, userID string) (models.Summary, error) {
	bal, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return models.Summary{}, err
	}
	txs, err := s.ledger.History(ctx, userID)
	if err != nil {
		return models.Summary{}, err
	}
	return models.Summary{Balance: bal, Transactions: txs}, nil
}

// Deposit adds money to the user's wallet. Upper limits are a concern of the
// caller; the ledger only insists on a positive amount.
func (s *WalletService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (models.Transaction, error) {
	if err := checkAmount(amount); err != nil {
		return models.Transaction{}, err
	}
	if err := simulate.Delay(ctx, s.depositDelay); err != nil {
		return models.Transaction{}, err
	}
	return s.apply(ctx, models.Transaction{To: userID, Amount: amount, Kind: models.KindDeposit}, events.WalletDeposit)
}

// Pay takes an order payment out of the wallet.
func (s *WalletService) Pay(ctx context.Context, userID string, amount decimal.Decimal, orderID string) (models.Transaction, error) {
	if err := checkAmount(amount); err != nil {
		return models.Transaction{}, err
	}
	return s.apply(ctx, models.Transaction{
		From: userID, Amount: amount, Kind: models.KindPayment, Reference: orderID,
	}, events.WalletPayment)
}

// Refund gives back a payment for an order that could not be completed.
func (s *WalletService) Refund(ctx context.Context, userID string, amount decimal.Decimal, orderID string) (models.Transaction, error) {
	if err := checkAmount(amount); err != nil {
		return models.Transaction{}, err
	}
	return s.apply(ctx, models.Transaction{
		To: userID, Amount: amount, Kind: models.KindRefund, Reference: orderID,
	}, events.WalletRefund)
}

func (s *WalletService) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, channel models.Channel) (models.Transaction, error) {
	if err := checkAmount(amount); err != nil {
		return models.Transaction{}, err
	}
	if _, err := s.dir.Lookup(ctx, toID); err != nil {
		return models.Transaction{}, err
	}
	if fromID == toID {
		return models.Transaction{}, ErrSelfTransfer
	}
	if err := simulate.Delay(ctx, s.transferDelay); err != nil {
		return models.Transaction{}, err
	}
	return s.apply(ctx, models.Transaction{
		From: fromID, To: toID, Amount: amount, Kind: models.KindTransfer, Channel: channel,
	}, events.WalletTransfer)
}

// TransferToEmail is the wallet page transfer, addressed by email.
func (s *WalletService) TransferToEmail(ctx context.Context, fromID, email string, amount decimal.Decimal) (models.Transaction, identity.Profile, error) {
	if err := checkAmount(amount); err != nil {
		return models.Transaction{}, identity.Profile{}, err
	}
	to, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		return models.Transaction{}, identity.Profile{}, err
	}
	tx, err := s.Transfer(ctx, fromID, to.ID, amount, models.ChannelWallet)
	return tx, to, err
}

func (s *WalletService) apply(ctx context.Context, tx models.Transaction, event string) (models.Transaction, error) {
	tx.ID = ids.New()
	if err := checkAmount(tx.Amount); err != nil {
		return models.Transaction{}, err
	}
	tx.Amount = tx.Amount.Round(2)
	tx.CreatedAt = s.now()
	if err := s.ledger.Apply(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return models.Transaction{}, ErrInsufficientBalance
		}
		return models.Transaction{}, err
	}
	logger.FromContext(ctx, s.lg).Info("ledger_applied", map[string]any{
		"transaction_id": tx.ID, "kind": tx.Kind, "amount": tx.Amount.StringFixed(2),
	})
	events.Emit(ctx, s.pub, s.lg, event, tx)
	return tx, nil
}
