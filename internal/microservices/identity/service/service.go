package service

import (
	"time"

	"food-order/internal/common/events"
	"food-order/internal/microservices/identity/repository"
)

type Service struct {
	IdentityService IdentityServiceInterface
}

func New(repo *repository.Repository, secret string, ttl time.Duration, pub events.Publisher) *Service {
	return &Service{
		IdentityService: NewIdentityService(repo, NewTokenIssuer(secret), ttl, pub),
	}
}
