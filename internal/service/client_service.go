package service

import (
	"context"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/client"
)

// ClientService handles client read paths.
type ClientService struct {
	storage *storage.Storage
}

// NewClientService creates a new ClientService.
func NewClientService(store *storage.Storage) *ClientService {
	return &ClientService{storage: store}
}

// Exists reports whether a client row exists for the platform identifier.
// Absence is a normal false here, not an error.
func (s *ClientService) Exists(ctx context.Context, platformID string) (bool, error) {
	row, err := s.storage.Clients.FindByPlatformID(ctx, platformID)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

// Info returns the client's profile and subscription state.
func (s *ClientService) Info(ctx context.Context, platformID string) (*client.Client, error) {
	row, err := s.storage.Clients.FindByPlatformID(ctx, platformID)
	if err != nil {
		return nil, errdefs.Store(err)
	}
	if row == nil {
		return nil, errdefs.ClientNotExists(platformID)
	}
	return row, nil
}
