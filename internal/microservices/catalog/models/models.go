package models

import "github.com/shopspring/decimal"

// Restaurant is the presentation record shown for a cuisine.
type Restaurant struct {
	ID          string  `json:"id"`
	Cuisine     string  `json:"cuisine"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image"`
}

// MenuItem is a meal as listed on a menu or in search results.
type MenuItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Thumbnail string          `json:"thumbnail"`
	Category  string          `json:"category,omitempty"`
	Area      string          `json:"area,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure,omitempty"`
}

// Meal is the detailed view of a single meal.
type Meal struct {
	MenuItem
	Instructions string       `json:"instructions"`
	Tags         []string     `json:"tags,omitempty"`
	Video        string       `json:"video,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
}

const (
	SortByName   = "name"
	SortByRating = "rating"
)
