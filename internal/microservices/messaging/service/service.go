package service

import (
	"food-order/internal/common/events"
	"food-order/internal/microservices/messaging/repository"
)

type Service struct {
	MessagingService MessagingServiceInterface
	Hub              *Hub
}

func New(repo *repository.Repository, dir Directory, transfers Transfers, pub events.Publisher) *Service {
	hub := NewHub()
	return &Service{
		MessagingService: NewMessagingService(repo.MessageRepo, dir, transfers, pub, hub),
		Hub:              hub,
	}
}
