package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"food-order/internal/microservices/cart/models"
)

type CartRepositoryInterface interface {
	// Lines returns the owner's lines in insertion order.
	Lines(ctx context.Context, owner models.Owner) ([]models.Line, error)
	// AddOrIncrement appends line with its quantity, or bumps the quantity by
	// one when the item is already in the cart.
	AddOrIncrement(ctx context.Context, owner models.Owner, line models.Line) error
	SetQuantity(ctx context.Context, owner models.Owner, itemID string, qty int) (bool, error)
	Remove(ctx context.Context, owner models.Owner, itemID string) error
	Clear(ctx context.Context, owner models.Owner) error
	// Subtract takes each line's quantity off the matching cart line and drops
	// lines that reach zero. Quantities added in the meantime are kept.
	Subtract(ctx context.Context, owner models.Owner, lines []models.Line) error
}

type Repository struct {
	CartRepo CartRepositoryInterface
}

func NewMemory() *Repository {
	return &Repository{CartRepo: NewMemoryCartRepository()}
}

func NewPostgres(pool *pgxpool.Pool) *Repository {
	return &Repository{CartRepo: NewCartRepository(pool)}
}
