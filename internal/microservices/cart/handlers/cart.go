package handlers

import (
	"net/http"
	"strings"

	"food-order/internal/common/apperr"
	"food-order/internal/common/httpx"
	"food-order/internal/common/ids"
	"food-order/internal/common/logger"
	"food-order/internal/microservices/cart/models"
	"food-order/internal/microservices/cart/service"
	identity "food-order/internal/microservices/identity/models"
)

// GuestIDHeader carries the signed-out cart partition between requests.
const GuestIDHeader = "X-Guest-ID"

const maxGuestIDLen = 64

type quantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=999"`
}

type CartHandler struct {
	service service.CartServiceInterface
	lg      *logger.Logger
}

func NewCartHandler(s service.CartServiceInterface) *CartHandler {
	return &CartHandler{service: s, lg: logger.New("cart")}
}

// OwnerOf picks the cart partition for the request. Signed-out callers without
// a guest id get a fresh one, echoed back in the response header.
func OwnerOf(w http.ResponseWriter, r *http.Request) (models.Owner, error) {
	if sess, ok := identity.SessionFrom(r.Context()); ok {
		return models.UserOwner(sess.ID), nil
	}
	guest := strings.TrimSpace(r.Header.Get(GuestIDHeader))
	if len(guest) > maxGuestIDLen {
		return "", apperr.Field(GuestIDHeader, "is too long")
	}
	if guest == "" {
		guest = ids.New()
	}
	w.Header().Set(GuestIDHeader, guest)
	return models.GuestOwner(guest), nil
}

func (ch *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, err := OwnerOf(w, r)
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	cart, err := ch.service.Get(r.Context(), owner)
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cart)
}

func (ch *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	owner, err := OwnerOf(w, r)
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	var req service.Item
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	cart, err := ch.service.Add(r.Context(), owner, req)
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cart)
}

func (ch *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	owner, err := OwnerOf(w, r)
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	var req quantityRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	cart, err := ch.service.SetQuantity(r.Context(), owner, r.PathValue("item_id"), *req.Quantity)
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cart)
}

func (ch *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	owner, err := OwnerOf(w, r)
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	cart, err := ch.service.Remove(r.Context(), owner, r.PathValue("item_id"))
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cart)
}

func (ch *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	owner, err := OwnerOf(w, r)
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	if err := ch.service.Clear(r.Context(), owner); err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
