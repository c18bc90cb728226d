package dao

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusConfirmed = "confirmed"

const (
	PaymentWallet = "wallet"
	PaymentCard   = "card"
	PaymentCash   = "cash"
)

type Order struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	Items             []OrderItem     `json:"items"`
	Total             decimal.Decimal `json:"total"`
	DeliveryAddress   string          `json:"delivery_address"`
	Phone             string          `json:"phone"`
	Instructions      string          `json:"instructions,omitempty"`
	PaymentMethod     string          `json:"payment_method"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
}

// OrderItem is a cart line frozen at checkout.
type OrderItem struct {
	ItemID     string          `json:"item_id"`
	Name       string          `json:"name"`
	Thumbnail  string          `json:"thumbnail"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Restaurant string          `json:"restaurant"`
}

// OrderMessage is the order.placed event body.
type OrderMessage struct {
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	ItemCount     int             `json:"item_count"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
}
