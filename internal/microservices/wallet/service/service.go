package service

import (
	"food-order/internal/common/events"
	"food-order/internal/config"
	"food-order/internal/microservices/wallet/repository"
)

type Service struct {
	WalletService WalletServiceInterface
}

func New(repo *repository.Repository, dir Directory, pub events.Publisher, sim config.SimulationConfig) *Service {
	return &Service{
		WalletService: NewWalletService(repo.LedgerRepo, dir, pub, sim.DepositDelay, sim.TransferDelay),
	}
}
