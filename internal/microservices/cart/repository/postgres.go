package repository

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"food-order/internal/microservices/cart/models"
)

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) CartRepositoryInterface {
	return &CartRepository{db: db}
}

func (r *CartRepository) Lines(ctx context.Context, owner models.Owner) ([]models.Line, error) {
	rows, err := r.db.Query(ctx, `
		SELECT item_id, name, thumbnail, price::text, quantity, restaurant
		FROM cart_lines
		WHERE owner = $1
		ORDER BY position
	`, string(owner))
	if err != nil {
		return nil, errors.Wrap(err, "select cart lines")
	}
	defer rows.Close()

	lines := []models.Line{}
	for rows.Next() {
		var (
			l     models.Line
			price string
		)
		if err := rows.Scan(&l.ItemID, &l.Name, &l.Thumbnail, &price, &l.Quantity, &l.Restaurant); err != nil {
			return nil, errors.Wrap(err, "scan cart line")
		}
		if l.Price, err = decimal.NewFromString(price); err != nil {
			return nil, errors.Wrapf(err, "cart line %s price", l.ItemID)
		}
		lines = append(lines, l)
	}
	return lines, errors.Wrap(rows.Err(), "iterate cart lines")
}

func (r *CartRepository) AddOrIncrement(ctx context.Context, owner models.Owner, l models.Line) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cart_lines (owner, item_id, name, thumbnail, price, quantity, restaurant)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
		ON CONFLICT (owner, item_id) DO UPDATE SET quantity = cart_lines.quantity + 1
	`, string(owner), l.ItemID, l.Name, l.Thumbnail, l.Price.String(), l.Quantity, l.Restaurant)
	return errors.Wrap(err, "upsert cart line")
}

func (r *CartRepository) SetQuantity(ctx context.Context, owner models.Owner, itemID string, qty int) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE cart_lines SET quantity = $3 WHERE owner = $1 AND item_id = $2
	`, string(owner), itemID, qty)
	if err != nil {
		return false, errors.Wrap(err, "update cart quantity")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CartRepository) Remove(ctx context.Context, owner models.Owner, itemID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_lines WHERE owner = $1 AND item_id = $2`, string(owner), itemID)
	return errors.Wrap(err, "delete cart line")
}

func (r *CartRepository) Clear(ctx context.Context, owner models.Owner) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_lines WHERE owner = $1`, string(owner))
	return errors.Wrap(err, "clear cart")
}

func (r *CartRepository) Subtract(ctx context.Context, owner models.Owner, taken []models.Line) error {
	qty := make(map[string]int, len(taken))
	itemIDs := make([]string, 0, len(taken))
	for _, t := range taken {
		if _, ok := qty[t.ItemID]; !ok {
			itemIDs = append(itemIDs, t.ItemID)
		}
		qty[t.ItemID] += t.Quantity
	}
	// fixed lock order between concurrent checkouts of one cart
	sort.Strings(itemIDs)

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, id := range itemIDs {
			var current int
			err := tx.QueryRow(ctx, `
				SELECT quantity FROM cart_lines WHERE owner = $1 AND item_id = $2 FOR UPDATE
			`, string(owner), id).Scan(&current)
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			if err != nil {
				return errors.Wrap(err, "lock cart line")
			}
			if current <= qty[id] {
				_, err = tx.Exec(ctx, `DELETE FROM cart_lines WHERE owner = $1 AND item_id = $2`, string(owner), id)
				if err != nil {
					return errors.Wrap(err, "delete ordered cart line")
				}
				continue
			}
			_, err = tx.Exec(ctx, `
				UPDATE cart_lines SET quantity = quantity - $3 WHERE owner = $1 AND item_id = $2
			`, string(owner), id, qty[id])
			if err != nil {
				return errors.Wrap(err, "subtract cart quantity")
			}
		}
		return nil
	})
}
