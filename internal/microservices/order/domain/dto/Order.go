package domain

import "food-order/internal/microservices/order/domain/dao"

type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required,max=300"`
	Phone           string `json:"phone" validate:"required,max=32"`
	Instructions    string `json:"instructions" validate:"max=500"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=wallet card cash"`
	CardNumber      string `json:"card_number" validate:"max=32"`
}

type OrderList struct {
	Orders []dao.Order `json:"orders"`
}
