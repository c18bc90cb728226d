package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"food-order/internal/microservices/messaging/models"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) MessageRepositoryInterface {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Add(ctx context.Context, m models.Message) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO messages (id, sender_id, recipient_id, content, created_at, read)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.SenderID, m.RecipientID, m.Content, m.CreatedAt, m.Read)
	return errors.Wrap(err, "insert message")
}

func (r *MessageRepository) ForUser(ctx context.Context, userID string) ([]models.Message, error) {
	return r.list(ctx, `
		SELECT id, sender_id, recipient_id, content, created_at, read
		FROM messages
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY seq
	`, userID)
}

func (r *MessageRepository) Between(ctx context.Context, a, b string) ([]models.Message, error) {
	return r.list(ctx, `
		SELECT id, sender_id, recipient_id, content, created_at, read
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY seq
	`, a, b)
}

func (r *MessageRepository) list(ctx context.Context, sql string, args ...any) ([]models.Message, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select messages")
	}
	defer rows.Close()

	out := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.CreatedAt, &m.Read); err != nil {
			return nil, errors.Wrap(err, "scan message")
		}
		out = append(out, m)
	}
	return out, errors.Wrap(rows.Err(), "iterate messages")
}

func (r *MessageRepository) MarkRead(ctx context.Context, reader, sender string) (int, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE messages SET read = TRUE
		WHERE sender_id = $1 AND recipient_id = $2 AND NOT read
	`, sender, reader)
	if err != nil {
		return 0, errors.Wrap(err, "mark messages read")
	}
	return int(tag.RowsAffected()), nil
}

func (r *MessageRepository) DeleteBetween(ctx context.Context, a, b string) (int, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
	`, a, b)
	if err != nil {
		return 0, errors.Wrap(err, "delete thread")
	}
	return int(tag.RowsAffected()), nil
}
