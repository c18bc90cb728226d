package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	OrderRepo OrderRepositoryInterface
}

func NewMemory() *Repository {
	return &Repository{OrderRepo: NewMemoryOrderRepository()}
}

func NewPostgres(pool *pgxpool.Pool) *Repository {
	return &Repository{OrderRepo: NewOrderRepository(pool)}
}
