package repository

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"food-order/internal/microservices/wallet/models"
)

type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) LedgerRepositoryInterface {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var s string
	err := r.db.QueryRow(ctx, `SELECT balance::text FROM wallets WHERE user_id = $1`, userID).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "select balance")
	}
	return decimal.NewFromString(s)
}

func (r *LedgerRepository) Apply(ctx context.Context, t models.Transaction) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		// lock wallets in id order so two opposite transfers cannot deadlock
		users := make([]string, 0, 2)
		for _, u := range []string{t.From, t.To} {
			if u != "" {
				users = append(users, u)
			}
		}
		sort.Strings(users)

		balances := make(map[string]decimal.Decimal, len(users))
		for _, u := range users {
			if _, err := tx.Exec(ctx, `
				INSERT INTO wallets (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING
			`, u); err != nil {
				return errors.Wrap(err, "ensure wallet")
			}
			var s string
			if err := tx.QueryRow(ctx, `
				SELECT balance::text FROM wallets WHERE user_id = $1 FOR UPDATE
			`, u).Scan(&s); err != nil {
				return errors.Wrap(err, "lock wallet")
			}
			b, err := decimal.NewFromString(s)
			if err != nil {
				return errors.Wrap(err, "parse balance")
			}
			balances[u] = b
		}

		if t.From != "" {
			if balances[t.From].LessThan(t.Amount) {
				return ErrInsufficientFunds
			}
			if err := adjust(ctx, tx, t.From, t.Amount.Neg()); err != nil {
				return err
			}
		}
		if t.To != "" {
			if err := adjust(ctx, tx, t.To, t.Amount); err != nil {
				return err
			}
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO wallet_transactions (id, from_user, to_user, amount, kind, channel, reference, created_at)
			VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
		`, t.ID, t.From, t.To, t.Amount.String(), string(t.Kind), string(t.Channel), t.Reference, t.CreatedAt)
		return errors.Wrap(err, "insert transaction")
	})
}

func adjust(ctx context.Context, tx pgx.Tx, userID string, delta decimal.Decimal) error {
	_, err := tx.Exec(ctx, `
		UPDATE wallets SET balance = balance + $2::numeric, updated_at = now() WHERE user_id = $1
	`, userID, delta.String())
	return errors.Wrap(err, "update balance")
}

func (r *LedgerRepository) History(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, from_user, to_user, amount::text, kind, channel, reference, created_at
		FROM wallet_transactions
		WHERE from_user = $1 OR to_user = $1
		ORDER BY seq
	`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "select transactions")
	}
	defer rows.Close()

	out := []models.Transaction{}
	for rows.Next() {
		var (
			t             models.Transaction
			amount        string
			kind, channel string
		)
		if err := rows.Scan(&t.ID, &t.From, &t.To, &amount, &kind, &channel, &t.Reference, &t.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan transaction")
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, errors.Wrap(err, "parse amount")
		}
		t.Kind, t.Channel = models.Kind(kind), models.Channel(channel)
		out = append(out, t)
	}
	return out, errors.Wrap(rows.Err(), "iterate transactions")
}
