package notificator

import (
	"context"

	"food-order/internal/connections/rabbitmq"
	"food-order/internal/microservices/notificator/service"
)

// Start declares the event topology and logs notifications until ctx ends.
func Start(ctx context.Context, rmqClient *rabbitmq.Client, exchange string) error {
	if err := rmqClient.DeclareTopology(exchange); err != nil {
		return err
	}
	svc := service.New(rmqClient, rabbitmq.NotificationsQueue)
	return svc.NotificatorService.Notify(ctx)
}
