package repository

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"food-order/internal/microservices/wallet/models"
)

type MemoryLedgerRepository struct {
	mu       sync.RWMutex
	balances map[string]decimal.Decimal
	txs      []models.Transaction
}

func NewMemoryLedgerRepository() *MemoryLedgerRepository {
	return &MemoryLedgerRepository{balances: make(map[string]decimal.Decimal)}
}

func (r *MemoryLedgerRepository) Balance(_ context.Context, userID string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.balances[userID], nil
}

func (r *MemoryLedgerRepository) Apply(_ context.Context, tx models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx.From != "" {
		if r.balances[tx.From].LessThan(tx.Amount) {
			return ErrInsufficientFunds
		}
		r.balances[tx.From] = r.balances[tx.From].Sub(tx.Amount)
	}
	if tx.To != "" {
		r.balances[tx.To] = r.balances[tx.To].Add(tx.Amount)
	}
	r.txs = append(r.txs, tx)
	return nil
}

func (r *MemoryLedgerRepository) History(_ context.Context, userID string) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Transaction{}
	for _, tx := range r.txs {
		if tx.From == userID || tx.To == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}
