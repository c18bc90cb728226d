package service

import (
	"food-order/internal/common/events"
	"food-order/internal/config"
	"food-order/internal/microservices/order/repository"
)

type Service struct {
	OrderService OrderServiceInterface
}

func New(db *repository.Repository, cart Cart, wallet Wallet, pub events.Publisher, sim config.SimulationConfig) *Service {
	return &Service{
		OrderService: NewOrderService(db.OrderRepo, cart, wallet, pub, sim.PaymentDelay),
	}
}
