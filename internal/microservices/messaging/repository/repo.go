package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"food-order/internal/microservices/messaging/models"
)

type MessageRepositoryInterface interface {
	Add(ctx context.Context, m models.Message) error
	// ForUser returns every message the user sent or received, in send order.
	ForUser(ctx context.Context, userID string) ([]models.Message, error)
	Between(ctx context.Context, a, b string) ([]models.Message, error)
	// MarkRead flips unread messages from sender to reader and reports how many changed.
	MarkRead(ctx context.Context, reader, sender string) (int, error)
	// DeleteBetween removes the thread in both directions.
	DeleteBetween(ctx context.Context, a, b string) (int, error)
}

type Repository struct {
	MessageRepo MessageRepositoryInterface
}

func NewMemory() *Repository {
	return &Repository{MessageRepo: NewMemoryMessageRepository()}
}

func NewPostgres(pool *pgxpool.Pool) *Repository {
	return &Repository{MessageRepo: NewMessageRepository(pool)}
}
