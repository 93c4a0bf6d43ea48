package limit

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Limit is a per-category spending threshold. One row per (client, category);
// re-creating a limit for the same category overwrites the value.
type Limit struct {
	ID         int64
	ClientID   uuid.UUID
	CategoryID int16
	Value      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CategoryUsage is one row of the check-all aggregation: a configured limit
// joined with the window's expense total. Spent is zero for categories with a
// limit but no spend in the window.
type CategoryUsage struct {
	CategoryID   int16
	CategoryName string
	LimitValue   decimal.Decimal
	TotalSpent   decimal.Decimal
}

// ITable defines the read-side interface for limit storage operations.
type ITable interface {
	Get(ctx context.Context, clientID uuid.UUID, categoryID int16) (*Limit, error)
	CheckAll(ctx context.Context, clientID uuid.UUID, start, end time.Time) ([]*CategoryUsage, error)
}

// IWriter extends the read side with the upsert actions perform inside a
// transaction.
type IWriter interface {
	ITable
	Upsert(ctx context.Context, clientID uuid.UUID, categoryID int16, value decimal.Decimal) error
}
