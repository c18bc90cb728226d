package order

import (
	"net/http"

	"food-order/internal/common/events"
	"food-order/internal/config"
	"food-order/internal/microservices/order/handlers"
	"food-order/internal/microservices/order/repository"
	"food-order/internal/microservices/order/service"
)

type Module struct {
	Service *service.Service
	Handler *handlers.Handler
}

func New(repo *repository.Repository, cart service.Cart, wallet service.Wallet, pub events.Publisher, sim config.SimulationConfig) *Module {
	svc := service.New(repo, cart, wallet, pub, sim)
	return &Module{Service: svc, Handler: handlers.New(svc)}
}

func (m *Module) Routes(mux *http.ServeMux) {
	h := m.Handler.OrderHandler
	mux.HandleFunc("POST /api/v1/orders", h.AddOrder)
	mux.HandleFunc("GET /api/v1/orders", h.ListOrders)
	mux.HandleFunc("GET /api/v1/orders/{order_id}", h.GetOrder)
}
