package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"food-order/internal/common/httpx"
	"food-order/internal/common/logger"
	identity "food-order/internal/microservices/identity/models"
	"food-order/internal/microservices/wallet/service"
)

type depositRequest struct {
	Amount float64 `json:"amount" validate:"gt=0,max=10000"`
}

type transferRequest struct {
	Email  string  `json:"email" validate:"required,email"`
	Amount float64 `json:"amount" validate:"gt=0"`
}

type WalletHandler struct {
	service service.WalletServiceInterface
	lg      *logger.Logger
}

func NewWalletHandler(s service.WalletServiceInterface) *WalletHandler {
	return &WalletHandler{service: s, lg: logger.New("wallet")}
}

func (wh *WalletHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	sum, err := wh.service.Summary(r.Context(), sess.ID)
	if err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sum)
}

func (wh *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	txs, err := wh.service.History(r.Context(), sess.ID)
	if err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

func (wh *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	var req depositRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	tx, err := wh.service.Deposit(r.Context(), sess.ID, decimal.NewFromFloat(req.Amount))
	if err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	bal, err := wh.service.Balance(r.Context(), sess.ID)
	if err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"transaction": tx, "balance": bal})
}

func (wh *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	var req transferRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	tx, to, err := wh.service.TransferToEmail(r.Context(), sess.ID, req.Email, decimal.NewFromFloat(req.Amount))
	if err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	bal, err := wh.service.Balance(r.Context(), sess.ID)
	if err != nil {
		httpx.WriteError(w, r, wh.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"transaction": tx, "recipient": to, "balance": bal})
}
