package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-order/internal/common/ids"
	"food-order/internal/connections/database/dbtest"
	"food-order/internal/microservices/order/domain/dao"
)

func newOrder(userID string, created time.Time, names ...string) dao.Order {
	o := dao.Order{
		ID:                ids.Prefixed("ORDER"),
		UserID:            userID,
		DeliveryAddress:   "1 Main St",
		Phone:             "+15550100",
		PaymentMethod:     dao.PaymentCash,
		Status:            dao.StatusConfirmed,
		CreatedAt:         created,
		EstimatedDelivery: created.Add(45 * time.Minute),
	}
	for i, n := range names {
		it := dao.OrderItem{
			ItemID: ids.New(), Name: n, Price: decimal.RequireFromString("12.50"),
			Quantity: i + 1, Restaurant: "Luigi's",
		}
		o.Items = append(o.Items, it)
		o.Total = o.Total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return o
}

func itemNames(o dao.Order) []string {
	out := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		out = append(out, it.Name)
	}
	return out
}

func TestPostgresOrderItemsKeepCartOrder(t *testing.T) {
	repo := NewOrderRepository(dbtest.Pool(t))
	ctx := context.Background()
	user := ids.New()

	names := []string{"Zucchini", "Arancini", "Margherita", "Burrata", "Tiramisu", "Calzone", "Espresso", "Lasagna", "Gelato", "Bruschetta", "Focaccia"}
	order := newOrder(user, time.Now().UTC().Truncate(time.Microsecond), names...)
	require.NoError(t, repo.AddOrder(ctx, order))

	got, ok, err := repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, names, itemNames(got))
	assert.Equal(t, 11, got.Items[10].Quantity)
	assert.True(t, order.Total.Equal(got.Total))
	assert.True(t, got.CreatedAt.Equal(order.CreatedAt))

	list, err := repo.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, names, itemNames(list[0]))
}

func TestPostgresListByUserNewestFirst(t *testing.T) {
	repo := NewOrderRepository(dbtest.Pool(t))
	ctx := context.Background()
	user := ids.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	older := newOrder(user, now.Add(-time.Hour), "Pizza")
	newer := newOrder(user, now, "Sushi", "Miso")
	require.NoError(t, repo.AddOrder(ctx, older))
	require.NoError(t, repo.AddOrder(ctx, newer))
	require.NoError(t, repo.AddOrder(ctx, newOrder(ids.New(), now, "Ramen")))

	list, err := repo.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, []string{"Sushi", "Miso"}, itemNames(list[0]))
	assert.Equal(t, older.ID, list[1].ID)
}

func TestPostgresGetOrderMissing(t *testing.T) {
	repo := NewOrderRepository(dbtest.Pool(t))

	_, ok, err := repo.GetOrder(context.Background(), ids.Prefixed("ORDER"))
	require.NoError(t, err)
	assert.False(t, ok)
}
