package handlers

import (
	"net/http"

	"food-order/internal/common/httpx"
	"food-order/internal/common/logger"
	"food-order/internal/microservices/catalog/service"
)

type CatalogHandler struct {
	service service.CatalogServiceInterface
	lg      *logger.Logger
}

func NewCatalogHandler(s service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: s, lg: logger.New("catalog")}
}

func (ch *CatalogHandler) Cuisines(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"cuisines": ch.service.Cuisines()})
}

func (ch *CatalogHandler) Restaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"restaurants": ch.service.Restaurants(q.Get("q"), q.Get("sort")),
	})
}

func (ch *CatalogHandler) Restaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := ch.service.Restaurant(r.PathValue("cuisine"))
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rest)
}

func (ch *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	cuisine := r.PathValue("cuisine")
	items, err := ch.service.Menu(r.Context(), cuisine)
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	rest, _ := ch.service.Restaurant(cuisine)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"restaurant": rest, "items": items})
}

func (ch *CatalogHandler) SearchMeals(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"meals": ch.service.Search(r.Context(), r.URL.Query().Get("q")),
	})
}

func (ch *CatalogHandler) Meal(w http.ResponseWriter, r *http.Request) {
	meal, err := ch.service.Meal(r.Context(), r.PathValue("meal_id"))
	if err != nil {
		httpx.WriteError(w, r, ch.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, meal)
}
