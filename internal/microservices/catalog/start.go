package catalog

import (
	"net/http"

	"food-order/internal/config"
	"food-order/internal/microservices/catalog/handlers"
	"food-order/internal/microservices/catalog/mealdb"
	"food-order/internal/microservices/catalog/service"
)

type Module struct {
	Service *service.Service
	Handler *handlers.Handler
}

func New(cfg config.CatalogConfig) *Module {
	return NewWithSource(mealdb.New(cfg.BaseURL, cfg.Timeout))
}

func NewWithSource(source service.MealSource) *Module {
	svc := service.New(source)
	return &Module{Service: svc, Handler: handlers.New(svc)}
}

func (m *Module) Routes(mux *http.ServeMux) {
	h := m.Handler.CatalogHandler
	mux.HandleFunc("GET /api/v1/cuisines", h.Cuisines)
	mux.HandleFunc("GET /api/v1/restaurants", h.Restaurants)
	mux.HandleFunc("GET /api/v1/restaurants/{cuisine}", h.Restaurant)
	mux.HandleFunc("GET /api/v1/restaurants/{cuisine}/menu", h.Menu)
	mux.HandleFunc("GET /api/v1/meals", h.SearchMeals)
	mux.HandleFunc("GET /api/v1/meals/{meal_id}", h.Meal)
}
