package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/client"
)

// UpsertClient creates the client row on first contact or refreshes the
// profile fields of an existing one. Brand-new clients skip the subscription
// gate; they have nothing to check yet.
type UpsertClient struct {
	PlatformID   string
	PlatformName string
	Name         string
	Phone        string

	// ResultClientID is set after Perform: the existing internal id, or the
	// one minted for the new row.
	ResultClientID uuid.UUID

	IAction
}

func (a *UpsertClient) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, id, err := client.Resolve(ctx, writer.Clients, a.PlatformID)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := requireSubscription(existing); err != nil {
			return err
		}
	}

	err = writer.Clients.Upsert(ctx, &client.ClientUpsert{
		ID:           id,
		PlatformID:   a.PlatformID,
		PlatformName: a.PlatformName,
		Name:         a.Name,
		Phone:        a.Phone,
	})
	if err != nil {
		return err
	}

	a.ResultClientID = id
	return nil
}
