package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/client"
)

// IdentityService maps external platform identifiers to internal client ids.
type IdentityService struct {
	storage *storage.Storage
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(store *storage.Storage) *IdentityService {
	return &IdentityService{storage: store}
}

// ResolveClientID returns the stored internal id for the platform identifier,
// or mints a fresh one when no client row exists. A minted id is NOT
// persisted; only the first upsert commits it, so callers must not treat
// resolution alone as proof of existence.
func (s *IdentityService) ResolveClientID(ctx context.Context, platformID string) (uuid.UUID, bool, error) {
	row, id, err := client.Resolve(ctx, s.storage.Clients, platformID)
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, row != nil, nil
}
