package actions

import (
	"context"
	"time"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/client"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// requireClient resolves the platform identifier to a stored client row,
// failing with ClientNotExists when none is committed yet.
func requireClient(ctx context.Context, writer *storage.Writer, platformID string) (*client.Client, error) {
	row, err := writer.Clients.FindByPlatformID(ctx, platformID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errdefs.ClientNotExists(platformID)
	}
	return row, nil
}

// requireSubscription is the gate every mutating operation runs after
// resolving the client. Inactive subscription is a failure, not a false.
func requireSubscription(row *client.Client) error {
	if !row.SubscriptionActive(time.Now()) {
		return errdefs.SubscriptionInactive(row.ID.String())
	}
	return nil
}
