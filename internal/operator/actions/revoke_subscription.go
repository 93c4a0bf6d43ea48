package actions

import (
	"context"

	"github.com/carteira-app/finance-server/internal/storage"
)

// RevokeSubscription clears the subscribed flag. The subscription window
// timestamps stay untouched.
type RevokeSubscription struct {
	PlatformID string

	IAction
}

func (a *RevokeSubscription) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := requireClient(ctx, writer, a.PlatformID)
	if err != nil {
		return err
	}
	return writer.Clients.RevokeSubscription(ctx, row.ID)
}
