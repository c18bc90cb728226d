package handlers

import "food-order/internal/microservices/wallet/service"

type Handler struct {
	WalletHandler *WalletHandler
}

func New(s *service.Service) *Handler {
	return &Handler{
		WalletHandler: NewWalletHandler(s.WalletService),
	}
}
