package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carteira-app/finance-server/internal/dates"
	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/limit"
)

// LimitService handles spending-limit read paths.
type LimitService struct {
	storage *storage.Storage
	now     func() time.Time
}

// NewLimitService creates a new LimitService.
func NewLimitService(store *storage.Storage) *LimitService {
	return &LimitService{
		storage: store,
		now:     time.Now,
	}
}

// GetLimit returns the configured threshold for (client, category), or zero
// when none is configured. "No limit" is not an error.
func (s *LimitService) GetLimit(ctx context.Context, clientID uuid.UUID, categoryID int16) (decimal.Decimal, error) {
	row, err := s.storage.Limits.Get(ctx, clientID, categoryID)
	if err != nil {
		return decimal.Zero, errdefs.Store(err)
	}
	if row == nil {
		return decimal.Zero, nil
	}
	return row.Value, nil
}

// CheckLimit sums the current calendar month's expense spend for the category
// and compares it against the configured limit. Exceeded means spent reached
// or passed the limit; with no limit configured the check never reports
// exceeded.
func (s *LimitService) CheckLimit(ctx context.Context, clientID uuid.UUID, categoryID int16) (*LimitStatus, error) {
	category, err := s.storage.Catalog.CategoryByID(ctx, categoryID)
	if err != nil {
		return nil, errdefs.Store(err)
	}
	if category == nil {
		return nil, errdefs.Validation("unknown payment category %d", categoryID)
	}

	start, end := dates.MonthWindow(s.now())
	spent, err := s.storage.Transactions.SumExpensesForCategory(ctx, clientID, categoryID, start, end)
	if err != nil {
		return nil, errdefs.Store(err)
	}

	status := &LimitStatus{
		CategoryID:   categoryID,
		CategoryName: category.Name,
		TotalSpent:   spent,
	}
	row, err := s.storage.Limits.Get(ctx, clientID, categoryID)
	if err != nil {
		return nil, errdefs.Store(err)
	}
	if row != nil {
		status.LimitValue = row.Value
		status.Exceeded = spent.GreaterThanOrEqual(row.Value)
	}
	return status, nil
}

// CheckAllLimits runs the aggregation across every configured category. The
// window defaults to the current calendar month when the caller gives none.
func (s *LimitService) CheckAllLimits(ctx context.Context, clientID uuid.UUID, start, end *time.Time) ([]*limit.CategoryUsage, error) {
	windowStart, windowEnd := dates.MonthWindow(s.now())
	if start != nil {
		windowStart = *start
	}
	if end != nil {
		windowEnd = *end
	}
	if !windowEnd.After(windowStart) {
		return nil, errdefs.Validation("date window end must be after start")
	}

	rows, err := s.storage.Limits.CheckAll(ctx, clientID, windowStart, windowEnd)
	if err != nil {
		return nil, errdefs.Store(err)
	}
	return rows, nil
}
