package wallet

import (
	"net/http"

	"food-order/internal/common/events"
	"food-order/internal/config"
	"food-order/internal/microservices/wallet/handlers"
	"food-order/internal/microservices/wallet/repository"
	"food-order/internal/microservices/wallet/service"
)

type Module struct {
	Service *service.Service
	Handler *handlers.Handler
}

func New(repo *repository.Repository, dir service.Directory, pub events.Publisher, sim config.SimulationConfig) *Module {
	svc := service.New(repo, dir, pub, sim)
	return &Module{Service: svc, Handler: handlers.New(svc)}
}

func (m *Module) Routes(mux *http.ServeMux) {
	h := m.Handler.WalletHandler
	mux.HandleFunc("GET /api/v1/wallet", h.Summary)
	mux.HandleFunc("POST /api/v1/wallet/deposit", h.Deposit)
	mux.HandleFunc("POST /api/v1/wallet/transfer", h.Transfer)
	mux.HandleFunc("GET /api/v1/wallet/transactions", h.Transactions)
}
