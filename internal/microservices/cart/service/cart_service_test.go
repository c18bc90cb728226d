package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-order/internal/common/apperr"
	"food-order/internal/microservices/cart/models"
	"food-order/internal/microservices/cart/repository"
)

func newCartService() *CartService {
	return NewCartService(repository.NewMemoryCartRepository())
}

var pizza = Item{ItemID: "52771", Name: "Pizza", Thumbnail: "p.jpg", Restaurant: "Bella Italia"}

func TestAddTwiceIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	s := newCartService()
	owner := models.UserOwner("u1")

	_, err := s.Add(ctx, owner, pizza)
	require.NoError(t, err)
	cart, err := s.Add(ctx, owner, pizza)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, "16.00", cart.Lines[0].Price.StringFixed(2))
	assert.Equal(t, "32.00", cart.Total.StringFixed(2))
	assert.Equal(t, 2, cart.ItemCount)
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newCartService()
	owner := models.GuestOwner("g1")

	for _, it := range []Item{
		{ItemID: "3", Name: "Sushi"},
		{ItemID: "1", Name: "Pizza"},
		{ItemID: "2", Name: "Tacos"},
	} {
		_, err := s.Add(ctx, owner, it)
		require.NoError(t, err)
	}
	cart, err := s.Add(ctx, owner, Item{ItemID: "3", Name: "Sushi"})
	require.NoError(t, err)

	var ids []string
	for _, l := range cart.Lines {
		ids = append(ids, l.ItemID)
	}
	assert.Equal(t, []string{"3", "1", "2"}, ids)
	assert.Equal(t, 4, cart.ItemCount)
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	s := newCartService()
	owner := models.UserOwner("u1")
	_, err := s.Add(ctx, owner, pizza)
	require.NoError(t, err)

	cart, err := s.SetQuantity(ctx, owner, pizza.ItemID, 5)
	require.NoError(t, err)
	assert.Equal(t, "80.00", cart.Total.StringFixed(2))

	cart, err = s.SetQuantity(ctx, owner, pizza.ItemID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assert.True(t, cart.Total.IsZero())

	_, err = s.SetQuantity(ctx, owner, "missing", 2)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestPartitionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newCartService()
	_, err := s.Add(ctx, models.GuestOwner("g1"), pizza)
	require.NoError(t, err)

	cart, err := s.Get(ctx, models.UserOwner("g1"))
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	require.NoError(t, s.Clear(ctx, models.GuestOwner("g1")))
	cart, err = s.Get(ctx, models.GuestOwner("g1"))
	require.NoError(t, err)
	assert.Equal(t, 0, cart.ItemCount)
}

func TestAddValidates(t *testing.T) {
	_, err := newCartService().Add(context.Background(), models.UserOwner("u"), Item{ItemID: " ", Name: "Pizza"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRemoveMissingIsNoop(t *testing.T) {
	cart, err := newCartService().Remove(context.Background(), models.UserOwner("u"), "nope")
	require.NoError(t, err)
	assert.NotNil(t, cart.Lines)
}

func TestRemoveOrderedKeepsLaterAdditions(t *testing.T) {
	ctx := context.Background()
	s := newCartService()
	owner := models.UserOwner("u1")
	_, err := s.Add(ctx, owner, pizza)
	require.NoError(t, err)
	ordered, err := s.Get(ctx, owner)
	require.NoError(t, err)

	_, err = s.Add(ctx, owner, pizza)
	require.NoError(t, err)
	_, err = s.Add(ctx, owner, Item{ItemID: "2", Name: "Sushi"})
	require.NoError(t, err)

	require.NoError(t, s.RemoveOrdered(ctx, owner, ordered.Lines))
	cart, err := s.Get(ctx, owner)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
	assert.Equal(t, "2", cart.Lines[1].ItemID)

	require.NoError(t, s.RemoveOrdered(ctx, owner, cart.Lines))
	cart, err = s.Get(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestPriceUsesNameAsSent(t *testing.T) {
	ctx := context.Background()
	s := newCartService()
	// " Pizza " is 7 units long: 8 + 7 + 3
	cart, err := s.Add(ctx, models.UserOwner("u1"), Item{ItemID: "1", Name: " Pizza "})
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "18.00", cart.Lines[0].Price.StringFixed(2))
	assert.Equal(t, " Pizza ", cart.Lines[0].Name)

	_, err = s.Add(ctx, models.UserOwner("u1"), Item{ItemID: "2", Name: "   "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSetQuantityUpperBound(t *testing.T) {
	ctx := context.Background()
	s := newCartService()
	owner := models.UserOwner("u1")
	_, err := s.Add(ctx, owner, pizza)
	require.NoError(t, err)

	_, err = s.SetQuantity(ctx, owner, pizza.ItemID, MaxQuantity+1)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	cart, err := s.SetQuantity(ctx, owner, pizza.ItemID, MaxQuantity)
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, cart.ItemCount)
}
