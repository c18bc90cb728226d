package handlers

import "food-order/internal/microservices/messaging/service"

type Handler struct {
	ConversationHandler *ConversationHandler
	StreamHandler       *StreamHandler
}

func New(s *service.Service) *Handler {
	return &Handler{
		ConversationHandler: NewConversationHandler(s.MessagingService),
		StreamHandler:       NewStreamHandler(s.MessagingService),
	}
}
