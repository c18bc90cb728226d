package repository

import (
	"context"
	"strings"
	"sync"

	"food-order/internal/microservices/identity/models"
)

type MemoryAccountRepository struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]models.Account
	byEmail map[string]string
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		byID:    make(map[string]models.Account),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryAccountRepository) Create(_ context.Context, a models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return ErrDuplicateEmail
	}
	r.byID[a.ID] = a
	r.byEmail[a.Email] = a.ID
	r.order = append(r.order, a.ID)
	return nil
}

func (r *MemoryAccountRepository) ByID(_ context.Context, id string) (models.Account, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	return a, ok, nil
}

func (r *MemoryAccountRepository) ByEmail(_ context.Context, email string) (models.Account, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return models.Account{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *MemoryAccountRepository) SearchEmail(_ context.Context, query string, limit int) ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := strings.ToLower(query)
	var out []models.Account
	for _, id := range r.order {
		a := r.byID[id]
		if strings.Contains(strings.ToLower(a.Email), q) {
			out = append(out, a)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionRecord
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]models.SessionRecord)}
}

func (r *MemorySessionRepository) Create(_ context.Context, s models.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *MemorySessionRepository) Get(_ context.Context, id string) (models.SessionRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok, nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
