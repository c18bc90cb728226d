package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"food-order/internal/connections/database"
	"food-order/internal/microservices/identity/models"
)

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) AccountRepositoryInterface {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a models.Account) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (id, name, email, password, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.Name, a.Email, a.Password, a.CreatedAt)
	if database.IsUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return errors.Wrap(err, "insert account")
}

func (r *AccountRepository) ByID(ctx context.Context, id string) (models.Account, bool, error) {
	return r.one(ctx, `SELECT id, name, email, password, created_at FROM accounts WHERE id = $1`, id)
}

func (r *AccountRepository) ByEmail(ctx context.Context, email string) (models.Account, bool, error) {
	return r.one(ctx, `SELECT id, name, email, password, created_at FROM accounts WHERE email = $1`, email)
}

func (r *AccountRepository) one(ctx context.Context, sql string, arg string) (models.Account, bool, error) {
	var a models.Account
	err := r.db.QueryRow(ctx, sql, arg).Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Account{}, false, nil
	}
	if err != nil {
		return models.Account{}, false, errors.Wrap(err, "select account")
	}
	return a, true, nil
}

func (r *AccountRepository) SearchEmail(ctx context.Context, query string, limit int) ([]models.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	// escape LIKE wildcards so the match stays a plain substring filter
	pattern := "%" + strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(query) + "%"
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, password, created_at
		FROM accounts
		WHERE email ILIKE $1
		ORDER BY created_at, id
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, errors.Wrap(err, "search accounts")
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan account")
		}
		out = append(out, a)
	}
	return out, errors.Wrap(rows.Err(), "iterate accounts")
}

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) SessionRepositoryInterface {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s models.SessionRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (id, account_id, created_at, expires_at) VALUES ($1, $2, $3, $4)
	`, s.ID, s.AccountID, s.CreatedAt, s.ExpiresAt)
	return errors.Wrap(err, "insert session")
}

func (r *SessionRepository) Get(ctx context.Context, id string) (models.SessionRecord, bool, error) {
	var s models.SessionRecord
	err := r.db.QueryRow(ctx, `
		SELECT id, account_id, created_at, expires_at FROM sessions WHERE id = $1
	`, id).Scan(&s.ID, &s.AccountID, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SessionRecord{}, false, nil
	}
	if err != nil {
		return models.SessionRecord{}, false, errors.Wrap(err, "select session")
	}
	return s, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return errors.Wrap(err, "delete session")
}
