package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"food-order/internal/microservices/wallet/models"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

type LedgerRepositoryInterface interface {
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
	// Apply debits tx.From (when set), credits tx.To (when set) and records tx
	// as one atomic step. It fails with ErrInsufficientFunds and changes
	// nothing when From cannot cover the amount.
	Apply(ctx context.Context, tx models.Transaction) error
	// History lists transactions involving userID in the order they were applied.
	History(ctx context.Context, userID string) ([]models.Transaction, error)
}

type Repository struct {
	LedgerRepo LedgerRepositoryInterface
}

func NewMemory() *Repository {
	return &Repository{LedgerRepo: NewMemoryLedgerRepository()}
}

func NewPostgres(pool *pgxpool.Pool) *Repository {
	return &Repository{LedgerRepo: NewLedgerRepository(pool)}
}
