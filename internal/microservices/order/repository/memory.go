package repository

import (
	"context"
	"sync"

	"food-order/internal/microservices/order/domain/dao"
)

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []dao.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

func (r *MemoryOrderRepository) AddOrder(_ context.Context, order dao.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.Items = append([]dao.OrderItem(nil), order.Items...)
	r.orders = append(r.orders, order)
	return nil
}

func (r *MemoryOrderRepository) ListByUser(_ context.Context, userID string) ([]dao.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []dao.Order{}
	// appended in creation order, so walking backwards is newest first
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *MemoryOrderRepository) GetOrder(_ context.Context, id string) (dao.Order, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, true, nil
		}
	}
	return dao.Order{}, false, nil
}
