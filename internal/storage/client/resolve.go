package client

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// Finder looks up a client row by its platform identifier. Both the pooled
// reader and a transaction-bound writer satisfy it.
type Finder interface {
	FindByPlatformID(ctx context.Context, platformID string) (*Client, error)
}

// Resolve maps a platform identifier to an internal client id. When a row
// exists it is returned alongside its id; otherwise a fresh id is minted and
// NOT persisted, so only a later upsert commits it.
func Resolve(ctx context.Context, finder Finder, platformID string) (*Client, uuid.UUID, error) {
	row, err := finder.FindByPlatformID(ctx, platformID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if row != nil {
		return row, row.ID, nil
	}

	minted, err := uuid.NewV4()
	if err != nil {
		return nil, uuid.Nil, err
	}
	return nil, minted, nil
}
