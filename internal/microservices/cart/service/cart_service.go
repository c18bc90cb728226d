package service

import (
	"context"
	"strconv"
	"strings"

	"food-order/internal/common/apperr"
	"food-order/internal/common/validate"
	"food-order/internal/microservices/cart/models"
	"food-order/internal/microservices/cart/repository"
	"food-order/internal/microservices/catalog/pricing"
)

// Item is a menu item being put into the cart.
type Item struct {
	ItemID     string `json:"item_id" validate:"required,max=64"`
	Name       string `json:"name" validate:"required,max=200"`
	Thumbnail  string `json:"thumbnail" validate:"max=500"`
	Restaurant string `json:"restaurant" validate:"max=200"`
}

// MaxQuantity caps a single cart line.
const MaxQuantity = 999

type CartServiceInterface interface {
	Get(ctx context.Context, owner models.Owner) (models.Cart, error)
	Add(ctx context.Context, owner models.Owner, item Item) (models.Cart, error)
	SetQuantity(ctx context.Context, owner models.Owner, itemID string, qty int) (models.Cart, error)
	Remove(ctx context.Context, owner models.Owner, itemID string) (models.Cart, error)
	Clear(ctx context.Context, owner models.Owner) error
	RemoveOrdered(ctx context.Context, owner models.Owner, lines []models.Line) error
}

type CartService struct {
	repo repository.CartRepositoryInterface
}

func NewCartService(repo repository.CartRepositoryInterface) *CartService {
	return &CartService{repo: repo}
}

func (s *CartService) Get(ctx context.Context, owner models.Owner) (models.Cart, error) {
	lines, err := s.repo.Lines(ctx, owner)
	if err != nil {
		return models.Cart{}, err
	}
	return models.NewCart(owner, lines), nil
}

// Add puts one unit of item into the cart.
func (s *CartService) Add(ctx context.Context, owner models.Owner, item Item) (models.Cart, error) {
	item.ItemID = strings.TrimSpace(item.ItemID)
	if err := validate.Struct(item); err != nil {
		return models.Cart{}, err
	}
	// the name is priced as sent, so it is checked but not trimmed
	if strings.TrimSpace(item.Name) == "" {
		return models.Cart{}, apperr.Field("name", "is required")
	}
	line := models.Line{
		ItemID:     item.ItemID,
		Name:       item.Name,
		Thumbnail:  item.Thumbnail,
		Price:      pricing.Price(item.Name),
		Quantity:   1,
		Restaurant: item.Restaurant,
	}
	if err := s.repo.AddOrIncrement(ctx, owner, line); err != nil {
		return models.Cart{}, err
	}
	return s.Get(ctx, owner)
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, owner models.Owner, itemID string, qty int) (models.Cart, error) {
	if qty <= 0 {
		return s.Remove(ctx, owner, itemID)
	}
	if qty > MaxQuantity {
		return models.Cart{}, apperr.Field("quantity", "must be at most "+strconv.Itoa(MaxQuantity))
	}
	found, err := s.repo.SetQuantity(ctx, owner, itemID, qty)
	if err != nil {
		return models.Cart{}, err
	}
	if !found {
		return models.Cart{}, apperr.NotFound("cart item")
	}
	return s.Get(ctx, owner)
}

func (s *CartService) Remove(ctx context.Context, owner models.Owner, itemID string) (models.Cart, error) {
	if err := s.repo.Remove(ctx, owner, itemID); err != nil {
		return models.Cart{}, err
	}
	return s.Get(ctx, owner)
}

func (s *CartService) Clear(ctx context.Context, owner models.Owner) error {
	return s.repo.Clear(ctx, owner)
}

// RemoveOrdered takes checked-out lines out of the cart. Anything added while
// the checkout was running stays.
func (s *CartService) RemoveOrdered(ctx context.Context, owner models.Owner, lines []models.Line) error {
	return s.repo.Subtract(ctx, owner, lines)
}
