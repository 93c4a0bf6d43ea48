package actions

import (
	"context"
	"time"

	"github.com/carteira-app/finance-server/internal/dates"
	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
)

// GrantSubscription activates the client's subscription for the given number
// of calendar months. Granting while a subscription is already active resets
// the start to now instead of stacking the remaining time; callers extending
// early lose the unused tail.
type GrantSubscription struct {
	PlatformID string
	Months     int

	ResultStart time.Time
	ResultEnd   time.Time

	IAction
}

func (a *GrantSubscription) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Months < 1 {
		return errdefs.Validation("subscription months must be at least 1, got %d", a.Months)
	}

	row, err := requireClient(ctx, writer, a.PlatformID)
	if err != nil {
		return err
	}

	start := time.Now().UTC()
	end := dates.AddMonthsClamped(start, a.Months)
	if err := writer.Clients.GrantSubscription(ctx, row.ID, start, end); err != nil {
		return err
	}

	a.ResultStart = start
	a.ResultEnd = end
	return nil
}
