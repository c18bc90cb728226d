package handlers

import "food-order/internal/microservices/catalog/service"

type Handler struct {
	CatalogHandler *CatalogHandler
}

func New(s *service.Service) *Handler {
	return &Handler{
		CatalogHandler: NewCatalogHandler(s.CatalogService),
	}
}
