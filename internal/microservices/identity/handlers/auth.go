package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"food-order/internal/common/httpx"
	"food-order/internal/common/logger"
	"food-order/internal/microservices/identity/models"
	"food-order/internal/microservices/identity/service"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthHandler struct {
	service service.IdentityServiceInterface
	lg      *logger.Logger
}

func NewAuthHandler(s service.IdentityServiceInterface) *AuthHandler {
	return &AuthHandler{service: s, lg: logger.New("identity")}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Browsers cannot set headers on websocket handshakes, so upgrade
// requests may pass it as ?access_token= instead.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" && websocket.IsWebSocketUpgrade(r) {
		return r.URL.Query().Get("access_token")
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate resolves the bearer token and puts the session into the request
// context. Requests without a usable token continue signed out.
func (ah *AuthHandler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := ah.service.Resolve(r.Context(), BearerToken(r)); ok {
			r = r.WithContext(models.WithSession(r.Context(), sess))
		}
		next.ServeHTTP(w, r)
	})
}

func (ah *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, ah.lg, err)
		return
	}
	res, err := ah.service.Signup(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, ah.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}

func (ah *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, ah.lg, err)
		return
	}
	res, err := ah.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteError(w, r, ah.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (ah *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := ah.service.Logout(r.Context(), BearerToken(r)); err != nil {
		httpx.WriteError(w, r, ah.lg, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ah *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := models.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, ah.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sess.Profile)
}

// SearchUsers backs the recipient picker.
func (ah *AuthHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	sess, err := models.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, ah.lg, err)
		return
	}
	users, err := ah.service.Search(r.Context(), r.URL.Query().Get("email"), sess.ID)
	if err != nil {
		httpx.WriteError(w, r, ah.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}
