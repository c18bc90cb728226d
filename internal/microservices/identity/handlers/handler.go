package handlers

import "food-order/internal/microservices/identity/service"

type Handler struct {
	AuthHandler *AuthHandler
}

func New(s *service.Service) *Handler {
	return &Handler{
		AuthHandler: NewAuthHandler(s.IdentityService),
	}
}
