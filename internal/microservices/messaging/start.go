package messaging

import (
	"net/http"

	"food-order/internal/common/events"
	"food-order/internal/microservices/messaging/handlers"
	"food-order/internal/microservices/messaging/repository"
	"food-order/internal/microservices/messaging/service"
)

type Module struct {
	Service *service.Service
	Handler *handlers.Handler
}

func New(repo *repository.Repository, dir service.Directory, transfers service.Transfers, pub events.Publisher) *Module {
	svc := service.New(repo, dir, transfers, pub)
	return &Module{Service: svc, Handler: handlers.New(svc)}
}

func (m *Module) Routes(mux *http.ServeMux) {
	c := m.Handler.ConversationHandler
	mux.HandleFunc("GET /api/v1/conversations", c.Inbox)
	mux.HandleFunc("GET /api/v1/conversations/stream", m.Handler.StreamHandler.Stream)
	mux.HandleFunc("GET /api/v1/conversations/{user_id}", c.Thread)
	mux.HandleFunc("POST /api/v1/conversations/{user_id}/messages", c.Send)
	mux.HandleFunc("POST /api/v1/conversations/{user_id}/read", c.MarkRead)
	mux.HandleFunc("POST /api/v1/conversations/{user_id}/transfer", c.SendMoney)
	mux.HandleFunc("DELETE /api/v1/conversations/{user_id}", c.Delete)
}

// CloseStreams disconnects websocket subscribers, for server shutdown.
func (m *Module) CloseStreams() {
	m.Handler.StreamHandler.Close()
}
