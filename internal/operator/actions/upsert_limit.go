package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
)

// UpsertLimit sets the spending threshold for (client, category). Repeating
// the call for the same category overwrites the previous value.
type UpsertLimit struct {
	PlatformID string
	CategoryID int16
	Value      decimal.Decimal

	IAction
}

func (a *UpsertLimit) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := requireClient(ctx, writer, a.PlatformID)
	if err != nil {
		return err
	}
	if err := requireSubscription(row); err != nil {
		return err
	}

	if a.Value.IsNegative() {
		return errdefs.Validation("limit value must not be negative, got %s", a.Value)
	}
	category, err := writer.Catalog.CategoryByID(ctx, a.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return errdefs.Validation("unknown payment category %d", a.CategoryID)
	}

	return writer.Limits.Upsert(ctx, row.ID, a.CategoryID, a.Value)
}
