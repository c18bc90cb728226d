package service

type Service struct {
	NotificatorService *NotificatorService
}

func New(source DeliverySource, queue string) *Service {
	return &Service{NotificatorService: NewNotificatorService(source, queue)}
}
