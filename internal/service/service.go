package service

import (
	"github.com/carteira-app/finance-server/internal/storage"
)

// Service holds all read-path business logic services. Mutations run through
// operator actions instead, so each one commits or rolls back atomically.
type Service struct {
	Identity    *IdentityService
	Client      *ClientService
	Transaction *TransactionService
	Limit       *LimitService
	Card        *CardService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage) *Service {
	return &Service{
		Identity:    NewIdentityService(store),
		Client:      NewClientService(store),
		Transaction: NewTransactionService(store),
		Limit:       NewLimitService(store),
		Card:        NewCardService(store),
	}
}
