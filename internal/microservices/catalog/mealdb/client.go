// Package mealdb is a small client for the public TheMealDB JSON API.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// RawMeal is a meal record as TheMealDB returns it. Ingredients and measures
// come as numbered keys (strIngredient1..20) and are collected
// into Ingredients and Measures.
type RawMeal struct {
	ID           string
	Name         string
	Thumbnail    string
	Category     string
	Area         string
	Instructions string
	Tags         string
	YouTube      string
	Ingredients  []string
	Measures     []string
}

type mealsEnvelope struct {
	Meals []map[string]*string `json:"meals"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ByArea lists meals of one cuisine (filter.php?a=). Only id, name and
// thumbnail are filled in.
func (c *Client) ByArea(ctx context.Context, area string) ([]RawMeal, error) {
	return c.get(ctx, "filter.php", url.Values{"a": {area}})
}

func (c *Client) Search(ctx context.Context, query string) ([]RawMeal, error) {
	return c.get(ctx, "search.php", url.Values{"s": {query}})
}

// Lookup returns the meal with id, or found=false.
func (c *Client) Lookup(ctx context.Context, id string) (RawMeal, bool, error) {
	meals, err := c.get(ctx, "lookup.php", url.Values{"i": {id}})
	if err != nil || len(meals) == 0 {
		return RawMeal{}, false, err
	}
	return meals[0], true, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values) ([]RawMeal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mealdb %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mealdb %s: status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// "meals": null means no results
	var env mealsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("mealdb %s: decode: %w", endpoint, err)
	}
	out := make([]RawMeal, 0, len(env.Meals))
	for _, m := range env.Meals {
		out = append(out, toRaw(m))
	}
	return out, nil
}

// untrimmed keeps meal names byte for byte; prices derive from their length.
func untrimmed(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func toRaw(m map[string]*string) RawMeal {
	get := func(k string) string {
		if v := m[k]; v != nil {
			return strings.TrimSpace(*v)
		}
		return ""
	}
	raw := RawMeal{
		ID:           get("idMeal"),
		Name:         untrimmed(m["strMeal"]),
		Thumbnail:    get("strMealThumb"),
		Category:     get("strCategory"),
		Area:         get("strArea"),
		Instructions: get("strInstructions"),
		Tags:         get("strTags"),
		YouTube:      get("strYoutube"),
	}
	for i := 1; i <= 20; i++ {
		ing := get("strIngredient" + strconv.Itoa(i))
		if ing == "" {
			continue
		}
		raw.Ingredients = append(raw.Ingredients, ing)
		raw.Measures = append(raw.Measures, get("strMeasure"+strconv.Itoa(i)))
	}
	return raw
}
