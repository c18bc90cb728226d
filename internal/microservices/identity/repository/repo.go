package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"food-order/internal/microservices/identity/models"
)

var ErrDuplicateEmail = errors.New("email already exists")

type AccountRepositoryInterface interface {
	Create(ctx context.Context, a models.Account) error
	ByID(ctx context.Context, id string) (models.Account, bool, error)
	ByEmail(ctx context.Context, email string) (models.Account, bool, error)
	// SearchEmail matches a case-insensitive substring of the email, in signup order.
	SearchEmail(ctx context.Context, query string, limit int) ([]models.Account, error)
}

type SessionRepositoryInterface interface {
	Create(ctx context.Context, s models.SessionRecord) error
	Get(ctx context.Context, id string) (models.SessionRecord, bool, error)
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	AccountRepo AccountRepositoryInterface
	SessionRepo SessionRepositoryInterface
}

func NewMemory() *Repository {
	return &Repository{
		AccountRepo: NewMemoryAccountRepository(),
		SessionRepo: NewMemorySessionRepository(),
	}
}

func NewPostgres(pool *pgxpool.Pool) *Repository {
	return &Repository{
		AccountRepo: NewAccountRepository(pool),
		SessionRepo: NewSessionRepository(pool),
	}
}
