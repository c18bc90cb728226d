package repository

import (
	"context"
	"sync"

	"food-order/internal/microservices/cart/models"
)

type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[models.Owner][]models.Line
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[models.Owner][]models.Line)}
}

func (r *MemoryCartRepository) Lines(_ context.Context, owner models.Owner) ([]models.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Line{}, r.carts[owner]...), nil
}

func (r *MemoryCartRepository) AddOrIncrement(_ context.Context, owner models.Owner, line models.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[owner]
	for i := range lines {
		if lines[i].ItemID == line.ItemID {
			lines[i].Quantity++
			return nil
		}
	}
	r.carts[owner] = append(lines, line)
	return nil
}

func (r *MemoryCartRepository) SetQuantity(_ context.Context, owner models.Owner, itemID string, qty int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[owner]
	for i := range lines {
		if lines[i].ItemID == itemID {
			lines[i].Quantity = qty
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryCartRepository) Remove(_ context.Context, owner models.Owner, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[owner]
	for i := range lines {
		if lines[i].ItemID == itemID {
			r.carts[owner] = append(lines[:i:i], lines[i+1:]...)
			break
		}
	}
	if len(r.carts[owner]) == 0 {
		delete(r.carts, owner)
	}
	return nil
}

func (r *MemoryCartRepository) Clear(_ context.Context, owner models.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, owner)
	return nil
}

func (r *MemoryCartRepository) Subtract(_ context.Context, owner models.Owner, taken []models.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	qty := make(map[string]int, len(taken))
	for _, t := range taken {
		qty[t.ItemID] += t.Quantity
	}
	kept := make([]models.Line, 0, len(r.carts[owner]))
	for _, l := range r.carts[owner] {
		l.Quantity -= qty[l.ItemID]
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		delete(r.carts, owner)
		return nil
	}
	r.carts[owner] = kept
	return nil
}
