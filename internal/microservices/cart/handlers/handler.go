package handlers

import "food-order/internal/microservices/cart/service"

type Handler struct {
	CartHandler *CartHandler
}

func New(s *service.Service) *Handler {
	return &Handler{
		CartHandler: NewCartHandler(s.CartService),
	}
}
