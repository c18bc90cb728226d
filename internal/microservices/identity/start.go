package identity

import (
	"net/http"

	"food-order/internal/common/events"
	"food-order/internal/config"
	"food-order/internal/microservices/identity/handlers"
	"food-order/internal/microservices/identity/repository"
	"food-order/internal/microservices/identity/service"
)

// Module is the wired identity service. Other modules use Service for
// directory lookups and Authenticate to learn who is calling.
type Module struct {
	Service *service.Service
	Handler *handlers.Handler
}

func New(repo *repository.Repository, auth config.AuthConfig, pub events.Publisher) *Module {
	svc := service.New(repo, auth.JWTSecret, auth.SessionTTL, pub)
	return &Module{Service: svc, Handler: handlers.New(svc)}
}

func (m *Module) Authenticate(next http.Handler) http.Handler {
	return m.Handler.AuthHandler.Authenticate(next)
}

func (m *Module) Routes(mux *http.ServeMux) {
	h := m.Handler.AuthHandler
	mux.HandleFunc("POST /api/v1/auth/signup", h.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/v1/auth/me", h.Me)
	mux.HandleFunc("GET /api/v1/users", h.SearchUsers)
}
