package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carteira-app/finance-server/internal/errdefs"
)

// filterColumns is the allow-list for extract filter fields. Only these names
// ever reach query text; values are always bound as parameters.
var filterColumns = map[string]string{
	"transaction_type":    "transactions.transaction_type",
	"transaction_revenue": "transactions.transaction_revenue",
	"payment_method_id":   "transactions.payment_method_id",
	"payment_category_id": "transactions.payment_category_id",
	"card_id":             "transactions.card_id",
	"payment_description": "transactions.payment_description",
}

var filterOperators = map[string]string{
	"=":  "=",
	"!=": "!=",
	">":  ">",
	">=": ">=",
	"<":  "<",
	"<=": "<=",
}

// ValidateFilter checks a field filter against the allow-lists.
func ValidateFilter(filter FieldFilter) error {
	if _, ok := filterColumns[filter.Field]; !ok {
		return errdefs.Validation("unknown filter field %q", filter.Field)
	}
	if _, ok := filterOperators[filter.Operator]; !ok {
		return errdefs.Validation("unknown filter operator %q", filter.Operator)
	}
	return nil
}

type transactionRow struct {
	InternalID         string          `db:"internal_transaction_id"`
	SequenceID         int64           `db:"transaction_id"`
	ClientID           uuid.UUID       `db:"client_id"`
	Amount             decimal.Decimal `db:"transaction_revenue"`
	Type               string          `db:"transaction_type"`
	MethodID           *int16          `db:"payment_method_id"`
	CategoryID         *int16          `db:"payment_category_id"`
	CardID             *int64          `db:"card_id"`
	Description        *string         `db:"payment_description"`
	Timestamp          time.Time       `db:"transaction_timestamp"`
	InstallmentPayment bool            `db:"installment_payment"`
	InstallmentNumber  int             `db:"installment_number"`
	InstallmentCount   int             `db:"installment_count"`
	CreatedAt          time.Time       `db:"created_at"`
}

func rowToTransaction(row *transactionRow) *Transaction {
	converted := &Transaction{
		InternalID:         row.InternalID,
		SequenceID:         row.SequenceID,
		ClientID:           row.ClientID,
		Amount:             row.Amount,
		Type:               row.Type,
		MethodID:           row.MethodID,
		CategoryID:         row.CategoryID,
		CardID:             row.CardID,
		Timestamp:          row.Timestamp,
		InstallmentPayment: row.InstallmentPayment,
		InstallmentNumber:  row.InstallmentNumber,
		InstallmentCount:   row.InstallmentCount,
		CreatedAt:          row.CreatedAt,
	}
	if row.Description != nil {
		converted.Description = *row.Description
	}
	return converted
}

var columns = []any{
	"internal_transaction_id", "transaction_id", "client_id",
	"transaction_revenue", "transaction_type", "payment_method_id",
	"payment_category_id", "card_id", "payment_description",
	"transaction_timestamp", "installment_payment", "installment_number",
	"installment_count", "created_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindBySequenceID returns the first row carrying the client-scoped sequence
// id, which for installment plans is the first installment. Absence is
// (nil, nil).
func (r *Reader) FindBySequenceID(ctx context.Context, clientID uuid.UUID, sequenceID int64) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("client_id").EQ(psql.Arg(clientID))),
		sm.Where(psql.Quote("transaction_id").EQ(psql.Arg(sequenceID))),
		sm.OrderBy("installment_number").Asc(),
		sm.Limit(1),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[transactionRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToTransaction(&row), nil
}

// SumExpensesForCategory totals expense-type spend for one category inside
// [start, end).
func (r *Reader) SumExpensesForCategory(ctx context.Context, clientID uuid.UUID, categoryID int16, start, end time.Time) (decimal.Decimal, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("COALESCE(SUM(transaction_revenue), 0)")),
		sm.From("transactions"),
		sm.Where(psql.Quote("client_id").EQ(psql.Arg(clientID))),
		sm.Where(psql.Quote("payment_category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote("transaction_type").EQ(psql.Arg(TypeExpense))),
		sm.Where(psql.Quote("transaction_timestamp").GTE(psql.Arg(start))),
		sm.Where(psql.Quote("transaction_timestamp").LT(psql.Arg(end))),
	)
	total, err := bob.One(ctx, r.exec, query, scan.SingleColumnMapper[decimal.Decimal])
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

type slimExtractRow struct {
	Timestamp time.Time       `db:"transaction_timestamp"`
	Revenue   decimal.Decimal `db:"transaction_revenue"`
}

type detailedExtractRow struct {
	SequenceID   int64           `db:"transaction_id"`
	Timestamp    time.Time       `db:"transaction_timestamp"`
	Revenue      decimal.Decimal `db:"transaction_revenue"`
	Description  *string         `db:"payment_description"`
	CategoryID   *int16          `db:"payment_category_id"`
	CategoryName *string         `db:"payment_category_name"`
	MethodID     *int16          `db:"payment_method_id"`
	MethodName   *string         `db:"payment_method_name"`
	Type         string          `db:"transaction_type"`
}

func extractMods(params *ExtractParams) ([]bob.Mod[*dialect.SelectQuery], error) {
	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.From("transactions"),
		sm.Where(psql.Quote("transactions", "client_id").EQ(psql.Arg(params.ClientID))),
		sm.Where(psql.Raw("date(transactions.transaction_timestamp) BETWEEN ? AND ?",
			params.Start.Format("2006-01-02"), params.End.Format("2006-01-02"))),
		sm.OrderBy("transactions.transaction_timestamp").Asc(),
	}
	for _, filter := range params.Filters {
		if err := ValidateFilter(filter); err != nil {
			return nil, err
		}
		column := filterColumns[filter.Field]
		operator := filterOperators[filter.Operator]
		mods = append(mods, sm.Where(psql.Raw(column+" "+operator+" ?", filter.Value)))
	}
	return mods, nil
}

// Extract runs the report extract query. Detailed extracts left-join the
// reference tables for category and method names.
func (r *Reader) Extract(ctx context.Context, params *ExtractParams) ([]*ExtractRow, error) {
	mods, err := extractMods(params)
	if err != nil {
		return nil, err
	}

	if !params.Detailed {
		query := psql.Select(append(mods,
			sm.Columns("transactions.transaction_timestamp", "transactions.transaction_revenue"),
		)...)
		rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[slimExtractRow]())
		if err != nil {
			return nil, err
		}
		result := make([]*ExtractRow, len(rows))
		for i, row := range rows {
			result[i] = &ExtractRow{Timestamp: row.Timestamp, Revenue: row.Revenue}
		}
		return result, nil
	}

	query := psql.Select(append(mods,
		sm.Columns(
			"transactions.transaction_id",
			"transactions.transaction_timestamp",
			"transactions.transaction_revenue",
			"transactions.payment_description",
			"transactions.payment_category_id",
			"payment_categories.payment_category_name",
			"transactions.payment_method_id",
			"payment_methods.payment_method_name",
			"transactions.transaction_type",
		),
		sm.LeftJoin("payment_categories").
			On(psql.Raw("transactions.payment_category_id = payment_categories.payment_category_id")),
		sm.LeftJoin("payment_methods").
			On(psql.Raw("transactions.payment_method_id = payment_methods.payment_method_id")),
	)...)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[detailedExtractRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*ExtractRow, len(rows))
	for i, row := range rows {
		sequenceID := row.SequenceID
		transactionType := row.Type
		result[i] = &ExtractRow{
			SequenceID:   &sequenceID,
			Timestamp:    row.Timestamp,
			Revenue:      row.Revenue,
			Description:  row.Description,
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			MethodID:     row.MethodID,
			MethodName:   row.MethodName,
			Type:         &transactionType,
		}
	}
	return result, nil
}

type cardActivityRow struct {
	CardID             int64           `db:"card_id"`
	SequenceID         int64           `db:"transaction_id"`
	Type               string          `db:"transaction_type"`
	Amount             decimal.Decimal `db:"transaction_revenue"`
	Description        *string         `db:"payment_description"`
	CategoryName       *string         `db:"payment_category_name"`
	MethodName         *string         `db:"payment_method_name"`
	Timestamp          time.Time       `db:"transaction_timestamp"`
	InstallmentPayment bool            `db:"installment_payment"`
	InstallmentNumber  int             `db:"installment_number"`
}

// ListCardActivity returns every card-linked transaction in [start, end),
// joined with reference-table names.
func (r *Reader) ListCardActivity(ctx context.Context, clientID uuid.UUID, start, end time.Time) ([]*CardActivity, error) {
	query := psql.Select(
		sm.Columns(
			"transactions.card_id",
			"transactions.transaction_id",
			"transactions.transaction_type",
			"transactions.transaction_revenue",
			"transactions.payment_description",
			"payment_categories.payment_category_name",
			"payment_methods.payment_method_name",
			"transactions.transaction_timestamp",
			"transactions.installment_payment",
			"transactions.installment_number",
		),
		sm.From("transactions"),
		sm.LeftJoin("payment_categories").
			On(psql.Raw("transactions.payment_category_id = payment_categories.payment_category_id")),
		sm.LeftJoin("payment_methods").
			On(psql.Raw("transactions.payment_method_id = payment_methods.payment_method_id")),
		sm.Where(psql.Quote("transactions", "client_id").EQ(psql.Arg(clientID))),
		sm.Where(psql.Raw("transactions.card_id IS NOT NULL")),
		sm.Where(psql.Quote("transactions", "transaction_timestamp").GTE(psql.Arg(start))),
		sm.Where(psql.Quote("transactions", "transaction_timestamp").LT(psql.Arg(end))),
		sm.OrderBy("transactions.transaction_timestamp").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[cardActivityRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*CardActivity, len(rows))
	for i, row := range rows {
		activity := &CardActivity{
			CardID:             row.CardID,
			SequenceID:         row.SequenceID,
			Type:               row.Type,
			Amount:             row.Amount,
			Date:               row.Timestamp,
			InstallmentPayment: row.InstallmentPayment,
			InstallmentNumber:  row.InstallmentNumber,
		}
		if row.Description != nil {
			activity.Description = *row.Description
		}
		if row.CategoryName != nil {
			activity.CategoryName = *row.CategoryName
		}
		if row.MethodName != nil {
			activity.MethodName = *row.MethodName
		}
		result[i] = activity
	}
	return result, nil
}
