package service

import "food-order/internal/microservices/cart/repository"

type Service struct {
	CartService CartServiceInterface
}

func New(repo *repository.Repository) *Service {
	return &Service{
		CartService: NewCartService(repo.CartRepo),
	}
}
