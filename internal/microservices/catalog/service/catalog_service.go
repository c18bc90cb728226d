package service

import (
	"context"
	"sort"
	"strings"

	"food-order/internal/common/apperr"
	"food-order/internal/common/logger"
	"food-order/internal/microservices/catalog/mealdb"
	"food-order/internal/microservices/catalog/models"
	"food-order/internal/microservices/catalog/pricing"
)

// MealSource is the remote meal database.
type MealSource interface {
	ByArea(ctx context.Context, area string) ([]mealdb.RawMeal, error)
	Search(ctx context.Context, query string) ([]mealdb.RawMeal, error)
	Lookup(ctx context.Context, id string) (mealdb.RawMeal, bool, error)
}

type CatalogServiceInterface interface {
	Cuisines() []string
	Restaurants(query, sortBy string) []models.Restaurant
	Restaurant(cuisine string) (models.Restaurant, error)
	Menu(ctx context.Context, cuisine string) ([]models.MenuItem, error)
	Search(ctx context.Context, query string) []models.MenuItem
	Meal(ctx context.Context, id string) (models.Meal, error)
}

type CatalogService struct {
	source MealSource
	lg     *logger.Logger
}

func NewCatalogService(source MealSource) *CatalogService {
	return &CatalogService{source: source, lg: logger.New("catalog")}
}

func (s *CatalogService) Cuisines() []string {
	return append([]string(nil), models.Cuisines...)
}

// Restaurants filters on name, cuisine and description and sorts by name
// ascending or rating descending.
func (s *CatalogService) Restaurants(query, sortBy string) []models.Restaurant {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Restaurant, 0, len(models.Restaurants))
	for _, c := range models.Cuisines {
		r, ok := models.Restaurants[c]
		if !ok {
			continue
		}
		if q != "" && !matches(r, q) {
			continue
		}
		out = append(out, r)
	}
	if sortBy == models.SortByRating {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

func matches(r models.Restaurant, q string) bool {
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Cuisine), q) ||
		strings.Contains(strings.ToLower(r.Description), q)
}

func (s *CatalogService) Restaurant(cuisine string) (models.Restaurant, error) {
	r, ok := models.Restaurants[cuisine]
	if !ok {
		return models.Restaurant{}, apperr.NotFound("restaurant")
	}
	return r, nil
}

// Menu lists the priced meals of a restaurant. A failing meal source yields an
// empty menu.
func (s *CatalogService) Menu(ctx context.Context, cuisine string) ([]models.MenuItem, error) {
	if _, err := s.Restaurant(cuisine); err != nil {
		return nil, err
	}
	raw, err := s.source.ByArea(ctx, cuisine)
	if err != nil {
		logger.FromContext(ctx, s.lg).Error("menu_fetch_failed", err, map[string]any{"cuisine": cuisine})
		return []models.MenuItem{}, nil
	}
	return toItems(raw), nil
}

func (s *CatalogService) Search(ctx context.Context, query string) []models.MenuItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.MenuItem{}
	}
	raw, err := s.source.Search(ctx, query)
	if err != nil {
		logger.FromContext(ctx, s.lg).Error("meal_search_failed", err, map[string]any{"query": query})
		return []models.MenuItem{}
	}
	return toItems(raw)
}

func (s *CatalogService) Meal(ctx context.Context, id string) (models.Meal, error) {
	raw, found, err := s.source.Lookup(ctx, id)
	if err != nil {
		logger.FromContext(ctx, s.lg).Error("meal_lookup_failed", err, map[string]any{"meal_id": id})
	}
	if err != nil || !found {
		return models.Meal{}, apperr.NotFound("meal")
	}

	meal := models.Meal{
		MenuItem:     toItem(raw),
		Instructions: raw.Instructions,
		Video:        raw.YouTube,
		Ingredients:  make([]models.Ingredient, 0, len(raw.Ingredients)),
	}
	for i, name := range raw.Ingredients {
		meal.Ingredients = append(meal.Ingredients, models.Ingredient{Name: name, Measure: raw.Measures[i]})
	}
	for _, tag := range strings.Split(raw.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			meal.Tags = append(meal.Tags, tag)
		}
	}
	return meal, nil
}

func toItems(raw []mealdb.RawMeal) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(raw))
	for _, m := range raw {
		out = append(out, toItem(m))
	}
	return out
}

func toItem(m mealdb.RawMeal) models.MenuItem {
	return models.MenuItem{
		ID:        m.ID,
		Name:      m.Name,
		Thumbnail: m.Thumbnail,
		Category:  m.Category,
		Area:      m.Area,
		Price:     pricing.Price(m.Name),
	}
}
