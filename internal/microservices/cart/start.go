package cart

import (
	"net/http"

	"food-order/internal/microservices/cart/handlers"
	"food-order/internal/microservices/cart/repository"
	"food-order/internal/microservices/cart/service"
)

type Module struct {
	Service *service.Service
	Handler *handlers.Handler
}

func New(repo *repository.Repository) *Module {
	svc := service.New(repo)
	return &Module{Service: svc, Handler: handlers.New(svc)}
}

func (m *Module) Routes(mux *http.ServeMux) {
	h := m.Handler.CartHandler
	mux.HandleFunc("GET /api/v1/cart", h.Get)
	mux.HandleFunc("POST /api/v1/cart/items", h.AddItem)
	mux.HandleFunc("PUT /api/v1/cart/items/{item_id}", h.UpdateItem)
	mux.HandleFunc("DELETE /api/v1/cart/items/{item_id}", h.RemoveItem)
	mux.HandleFunc("DELETE /api/v1/cart", h.Clear)
}
