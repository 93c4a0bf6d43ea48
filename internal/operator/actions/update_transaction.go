package actions

import (
	"context"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// UpdateTransaction touches selected fields of a single transaction row.
// Installment rows are never updatable; the plan must be deleted and
// re-created instead.
type UpdateTransaction struct {
	PlatformID string
	SequenceID int64
	Fields     transaction.UpdateFields

	IAction
}

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := requireClient(ctx, writer, a.PlatformID)
	if err != nil {
		return err
	}
	if err := requireSubscription(row); err != nil {
		return err
	}

	existing, err := writer.Transactions.FindBySequenceID(ctx, row.ID, a.SequenceID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errdefs.TransactionNotExists(a.SequenceID, row.ID.String())
	}
	if existing.InstallmentPayment {
		return errdefs.Validation("transaction %d is part of an installment plan and cannot be updated; delete and re-create it", a.SequenceID)
	}
	if a.Fields.IsEmpty() {
		return errdefs.Validation("no fields to update")
	}

	if methodID, ok := a.Fields.MethodID.Get(); ok {
		method, err := writer.Catalog.MethodByID(ctx, methodID)
		if err != nil {
			return err
		}
		if method == nil {
			return errdefs.Validation("unknown payment method %d", methodID)
		}
	}
	if categoryID, ok := a.Fields.CategoryID.Get(); ok {
		category, err := writer.Catalog.CategoryByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return errdefs.Validation("unknown payment category %d", categoryID)
		}
	}

	return writer.Transactions.Update(ctx, row.ID, a.SequenceID, &a.Fields)
}
