package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"food-order/internal/common/httpx"
	"food-order/internal/common/logger"
	identity "food-order/internal/microservices/identity/models"
	"food-order/internal/microservices/messaging/service"
)

type sendRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type moneyRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

type ConversationHandler struct {
	service service.MessagingServiceInterface
	lg      *logger.Logger
}

func NewConversationHandler(s service.MessagingServiceInterface) *ConversationHandler {
	return &ConversationHandler{service: s, lg: logger.New("messaging")}
}

func (ch *ConversationHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	inbox, err := ch.service.Inbox(r.Context(), sess.ID)
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, inbox)
}

func (ch *ConversationHandler) Thread(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	conv, err := ch.service.Thread(r.Context(), sess.ID, r.PathValue("user_id"))
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, conv)
}

func (ch *ConversationHandler) Send(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	var req sendRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	msg, err := ch.service.Send(r.Context(), sess.ID, r.PathValue("user_id"), req.Content)
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, msg)
}

func (ch *ConversationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	n, err := ch.service.MarkRead(r.Context(), sess.ID, r.PathValue("user_id"))
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]int{"marked": n})
}

func (ch *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	if _, err := ch.service.DeleteThread(r.Context(), sess.ID, r.PathValue("user_id")); err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ch *ConversationHandler) SendMoney(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	var req moneyRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	msg, tx, err := ch.service.SendMoney(r.Context(), sess.ID, r.PathValue("user_id"), decimal.NewFromFloat(req.Amount))
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"message": msg, "transaction": tx})
}
