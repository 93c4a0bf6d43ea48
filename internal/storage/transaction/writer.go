package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) Insert(ctx context.Context, insert *TransactionInsert) error {
	query := psql.Insert(
		im.Into("transactions",
			"internal_transaction_id", "transaction_id", "client_id",
			"transaction_revenue", "transaction_type", "payment_method_id",
			"payment_category_id", "card_id", "payment_description",
			"transaction_timestamp", "installment_payment",
			"installment_number", "installment_count",
		),
		im.Values(psql.Arg(
			insert.InternalID, insert.SequenceID, insert.ClientID,
			insert.Amount, insert.Type, insert.MethodID,
			insert.CategoryID, insert.CardID, insert.Description,
			insert.Timestamp, insert.InstallmentPayment,
			insert.InstallmentNumber, insert.InstallmentCount,
		)),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}

// Update touches exactly the columns set in fields on the single row keyed by
// (client, sequence id). The UpdateFields struct is the column allow-list;
// no caller-supplied names reach the query text.
func (w *Writer) Update(ctx context.Context, clientID uuid.UUID, sequenceID int64, fields *UpdateFields) error {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("transactions"),
		um.Where(psql.Quote("client_id").EQ(psql.Arg(clientID))),
		um.Where(psql.Quote("transaction_id").EQ(psql.Arg(sequenceID))),
	}
	if amount, ok := fields.Amount.Get(); ok {
		mods = append(mods, um.SetCol("transaction_revenue").ToArg(amount))
	}
	if transactionType, ok := fields.Type.Get(); ok {
		mods = append(mods, um.SetCol("transaction_type").ToArg(transactionType))
	}
	if methodID, ok := fields.MethodID.Get(); ok {
		mods = append(mods, um.SetCol("payment_method_id").ToArg(methodID))
	}
	if categoryID, ok := fields.CategoryID.Get(); ok {
		mods = append(mods, um.SetCol("payment_category_id").ToArg(categoryID))
	}
	if cardID, ok := fields.CardID.Get(); ok {
		mods = append(mods, um.SetCol("card_id").ToArg(cardID))
	}
	if description, ok := fields.Description.Get(); ok {
		mods = append(mods, um.SetCol("payment_description").ToArg(description))
	}
	if timestamp, ok := fields.Timestamp.Get(); ok {
		mods = append(mods, um.SetCol("transaction_timestamp").ToArg(timestamp))
	}

	_, err := bob.Exec(ctx, w.tx, psql.Update(mods...))
	return err
}

// Delete removes rows matching the filter, always scoped to the client.
// Returns the number of rows removed.
func (w *Writer) Delete(ctx context.Context, clientID uuid.UUID, filter *DeleteFilter) (int64, error) {
	mods := []bob.Mod[*dialect.DeleteQuery]{
		dm.From("transactions"),
		dm.Where(psql.Quote("client_id").EQ(psql.Arg(clientID))),
	}
	mods = appendDeletePredicate(mods, "transaction_id", toAnySlice(filter.SequenceIDs))
	mods = appendDeletePredicate(mods, "transaction_type", toAnySlice(filter.Types))
	mods = appendDeletePredicate(mods, "payment_method_id", toAnySlice(filter.MethodIDs))
	mods = appendDeletePredicate(mods, "payment_category_id", toAnySlice(filter.CategoryIDs))
	mods = appendDeletePredicate(mods, "card_id", toAnySlice(filter.CardIDs))
	mods = appendDeletePredicate(mods, "payment_description", toAnySlice(filter.Descriptions))

	result, err := bob.Exec(ctx, w.tx, psql.Delete(mods...))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func appendDeletePredicate(mods []bob.Mod[*dialect.DeleteQuery], column string, values []any) []bob.Mod[*dialect.DeleteQuery] {
	switch len(values) {
	case 0:
		return mods
	case 1:
		return append(mods, dm.Where(psql.Quote(column).EQ(psql.Arg(values[0]))))
	default:
		return append(mods, dm.Where(psql.Quote(column).In(psql.Arg(values...))))
	}
}

func toAnySlice[T any](values []T) []any {
	if len(values) == 0 {
		return nil
	}
	converted := make([]any, len(values))
	for i, value := range values {
		converted[i] = value
	}
	return converted
}
