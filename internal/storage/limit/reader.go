package limit

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type limitRow struct {
	ID         int64           `db:"limit_id"`
	ClientID   uuid.UUID       `db:"client_id"`
	CategoryID int16           `db:"category_id"`
	Value      decimal.Decimal `db:"limit_value"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

type usageRow struct {
	CategoryID   int16               `db:"payment_category_id"`
	CategoryName string              `db:"payment_category_name"`
	LimitValue   decimal.Decimal     `db:"limit_value"`
	TotalSpent   decimal.NullDecimal `db:"total_revenue"`
}

// checkAllQuery aggregates the window's expense spend per category and joins
// it against every configured limit, left-joined so zero-spend categories
// still appear.
const checkAllQuery = `
WITH spend_by_category AS (
    SELECT
        SUM(transaction_revenue) AS total_revenue,
        payment_category_id
    FROM transactions
    WHERE
        client_id = $1
        AND transaction_type = $2
        AND transaction_timestamp >= $3
        AND transaction_timestamp < $4
    GROUP BY payment_category_id
)
SELECT
    pc.payment_category_id,
    pc.payment_category_name,
    l.limit_value,
    s.total_revenue
FROM limits l
    LEFT JOIN spend_by_category s ON l.category_id = s.payment_category_id
    LEFT JOIN payment_categories pc ON l.category_id = pc.payment_category_id
WHERE l.client_id = $1
ORDER BY pc.payment_category_id`

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// Get returns the configured limit for (client, category), or (nil, nil)
// when none is configured. "No limit" is a valid state, not an error.
func (r *Reader) Get(ctx context.Context, clientID uuid.UUID, categoryID int16) (*Limit, error) {
	query := psql.Select(
		sm.Columns("limit_id", "client_id", "category_id", "limit_value", "created_at", "updated_at"),
		sm.From("limits"),
		sm.Where(psql.Quote("client_id").EQ(psql.Arg(clientID))),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[limitRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &Limit{
		ID:         row.ID,
		ClientID:   row.ClientID,
		CategoryID: row.CategoryID,
		Value:      row.Value,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

// CheckAll returns every configured limit with the expense spend inside
// [start, end).
func (r *Reader) CheckAll(ctx context.Context, clientID uuid.UUID, start, end time.Time) ([]*CategoryUsage, error) {
	query := psql.RawQuery(checkAllQuery, clientID, "expense", start, end)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[usageRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*CategoryUsage, len(rows))
	for i, row := range rows {
		usage := &CategoryUsage{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			LimitValue:   row.LimitValue,
		}
		if row.TotalSpent.Valid {
			usage.TotalSpent = row.TotalSpent.Decimal
		}
		result[i] = usage
	}
	return result, nil
}
