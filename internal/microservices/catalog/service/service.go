package service

type Service struct {
	CatalogService CatalogServiceInterface
}

func New(source MealSource) *Service {
	return &Service{
		CatalogService: NewCatalogService(source),
	}
}
