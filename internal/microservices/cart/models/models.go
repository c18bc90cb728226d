package models

import (
	"github.com/shopspring/decimal"
)

// Owner names a cart partition: "user:<id>" or "guest:<id>".
type Owner string

func UserOwner(userID string) Owner   { return Owner("user:" + userID) }
func GuestOwner(guestID string) Owner { return Owner("guest:" + guestID) }

// Line is one cart entry. Price is fixed when the item is first added.
type Line struct {
	ItemID     string          `json:"item_id"`
	Name       string          `json:"name"`
	Thumbnail  string          `json:"thumbnail"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Restaurant string          `json:"restaurant"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	Owner     Owner           `json:"-"`
	Lines     []Line          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// NewCart derives the totals from lines.
func NewCart(owner Owner, lines []Line) Cart {
	if lines == nil {
		lines = []Line{}
	}
	c := Cart{Owner: owner, Lines: lines, Total: decimal.Zero}
	for _, l := range lines {
		c.Total = c.Total.Add(l.Subtotal())
		c.ItemCount += l.Quantity
	}
	c.Total = c.Total.Round(2)
	return c
}
