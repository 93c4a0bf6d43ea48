package actions

import (
	"context"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// DeleteTransaction removes the rows matching the filter, always scoped to
// the resolved client no matter what the caller put in the filter.
type DeleteTransaction struct {
	PlatformID string
	Filter     transaction.DeleteFilter

	// ResultDeleted is set after Perform to the number of rows removed.
	ResultDeleted int64

	IAction
}

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := requireClient(ctx, writer, a.PlatformID)
	if err != nil {
		return err
	}
	if err := requireSubscription(row); err != nil {
		return err
	}
	if a.Filter.IsEmpty() {
		return errdefs.Validation("delete filter must name at least one field")
	}

	deleted, err := writer.Transactions.Delete(ctx, row.ID, &a.Filter)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return &errdefs.Error{
			Kind:    errdefs.KindTransactionNotExists,
			Message: "no transactions matched the delete filter",
		}
	}

	a.ResultDeleted = deleted
	return nil
}
