package handlers

import (
	"net/http"

	"food-order/internal/common/httpx"
	"food-order/internal/common/logger"
	identity "food-order/internal/microservices/identity/models"
	dto "food-order/internal/microservices/order/domain/dto"
	"food-order/internal/microservices/order/service"
)

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: s, lg: logger.New("order")}
}

func (oh *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, oh.lg, err)
		return
	}

	var req dto.CheckoutRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, oh.lg, err)
		return
	}

	order, err := oh.service.PlaceOrder(r.Context(), sess, req)
	if err != nil {
		httpx.WriteError(w, r, oh.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, order)
}

func (oh *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, oh.lg, err)
		return
	}
	orders, err := oh.service.ListOrders(r.Context(), sess.ID)
	if err != nil {
		httpx.WriteError(w, r, oh.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.OrderList{Orders: orders})
}

func (oh *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, oh.lg, err)
		return
	}
	order, err := oh.service.GetOrder(r.Context(), sess.ID, r.PathValue("order_id"))
	if err != nil {
		httpx.WriteError(w, r, oh.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, order)
}
