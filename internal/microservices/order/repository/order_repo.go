package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"food-order/internal/microservices/order/domain/dao"
)

type OrderRepositoryInterface interface {
	AddOrder(ctx context.Context, order dao.Order) error
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]dao.Order, error)
	GetOrder(ctx context.Context, id string) (dao.Order, bool, error)
}

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

func (or *OrderRepository) AddOrder(ctx context.Context, order dao.Order) error {
	return pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		// 1. order row
		_, err := tx.Exec(ctx, `
			INSERT INTO orders
			    (id, user_id, total, delivery_address, phone, instructions, payment_method, status, created_at, estimated_delivery)
			VALUES
			    ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10)
		`,
			order.ID,
			order.UserID,
			order.Total.String(),
			order.DeliveryAddress,
			order.Phone,
			order.Instructions,
			order.PaymentMethod,
			order.Status,
			order.CreatedAt,
			order.EstimatedDelivery,
		)
		if err != nil {
			return errors.Wrap(err, "insert order")
		}

		// 2. items, keeping cart order
		for i, item := range order.Items {
			_, err = tx.Exec(ctx, `
				INSERT INTO order_items (order_id, position, item_id, name, thumbnail, price, quantity, restaurant)
				VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
			`, order.ID, i, item.ItemID, item.Name, item.Thumbnail, item.Price.String(), item.Quantity, item.Restaurant)
			if err != nil {
				return errors.Wrapf(err, "insert order item %s", item.ItemID)
			}
		}
		return nil
	})
}

const orderColumns = `id, user_id, total::text, delivery_address, phone, instructions, payment_method, status, created_at, estimated_delivery`

func scanOrder(row pgx.Row) (dao.Order, error) {
	var (
		o     dao.Order
		total string
	)
	if err := row.Scan(&o.ID, &o.UserID, &total, &o.DeliveryAddress, &o.Phone, &o.Instructions,
		&o.PaymentMethod, &o.Status, &o.CreatedAt, &o.EstimatedDelivery); err != nil {
		return dao.Order{}, err
	}
	var err error
	o.Total, err = decimal.NewFromString(total)
	return o, err
}

func (or *OrderRepository) ListByUser(ctx context.Context, userID string) ([]dao.Order, error) {
	rows, err := or.db.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "select orders")
	}
	orders := []dao.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scan order")
		}
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate orders")
	}

	for i := range orders {
		if orders[i].Items, err = or.items(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (or *OrderRepository) GetOrder(ctx context.Context, id string) (dao.Order, bool, error) {
	o, err := scanOrder(or.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return dao.Order{}, false, nil
	}
	if err != nil {
		return dao.Order{}, false, errors.Wrap(err, "select order")
	}
	if o.Items, err = or.items(ctx, o.ID); err != nil {
		return dao.Order{}, false, err
	}
	return o, true, nil
}

func (or *OrderRepository) items(ctx context.Context, orderID string) ([]dao.OrderItem, error) {
	rows, err := or.db.Query(ctx, `
		SELECT item_id, name, thumbnail, price::text, quantity, restaurant
		FROM order_items WHERE order_id = $1 ORDER BY position
	`, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "select order items")
	}
	defer rows.Close()

	items := []dao.OrderItem{}
	for rows.Next() {
		var (
			it    dao.OrderItem
			price string
		)
		if err := rows.Scan(&it.ItemID, &it.Name, &it.Thumbnail, &price, &it.Quantity, &it.Restaurant); err != nil {
			return nil, errors.Wrap(err, "scan order item")
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, errors.Wrap(err, "parse item price")
		}
		items = append(items, it)
	}
	return items, errors.Wrap(rows.Err(), "iterate order items")
}
