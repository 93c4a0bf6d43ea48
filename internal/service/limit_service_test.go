package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage/limit"
)

func TestGetLimit_AbsentIsZero(t *testing.T) {
	store, _, _, _, _ := fakeStorage()
	svc := NewLimitService(store)

	value, err := svc.GetLimit(context.Background(), uuid.Must(uuid.NewV4()), 1)

	require.NoError(t, err)
	assert.True(t, value.IsZero())
}

func TestGetLimit_ReturnsConfiguredValue(t *testing.T) {
	store, _, _, limits, _ := fakeStorage()
	limits.rows[1] = &limit.Limit{CategoryID: 1, Value: decimal.RequireFromString("500.00")}
	svc := NewLimitService(store)

	value, err := svc.GetLimit(context.Background(), uuid.Must(uuid.NewV4()), 1)

	require.NoError(t, err)
	assert.True(t, value.Equal(decimal.RequireFromString("500.00")))
}

func TestCheckLimit_UnknownCategory(t *testing.T) {
	store, _, _, _, _ := fakeStorage()
	svc := NewLimitService(store)

	_, err := svc.CheckLimit(context.Background(), uuid.Must(uuid.NewV4()), 42)

	assert.True(t, errdefs.IsKind(err, errdefs.KindValidation))
}

func TestCheckLimit_NoLimitNeverExceeded(t *testing.T) {
	store, _, transactions, _, _ := fakeStorage()
	transactions.spent = decimal.RequireFromString("900.00")
	svc := NewLimitService(store)

	status, err := svc.CheckLimit(context.Background(), uuid.Must(uuid.NewV4()), 1)

	require.NoError(t, err)
	assert.False(t, status.Exceeded)
	assert.True(t, status.LimitValue.IsZero())
	assert.True(t, status.TotalSpent.Equal(decimal.RequireFromString("900.00")))
	assert.Equal(t, "food", status.CategoryName)
}

func TestCheckLimit_Exceeded(t *testing.T) {
	tests := []struct {
		name     string
		spent    string
		limit    string
		exceeded bool
	}{
		{name: "under", spent: "99.99", limit: "100.00", exceeded: false},
		{name: "exactly at limit", spent: "100.00", limit: "100.00", exceeded: true},
		{name: "over", spent: "100.01", limit: "100.00", exceeded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, transactions, limits, _ := fakeStorage()
			transactions.spent = decimal.RequireFromString(tt.spent)
			limits.rows[1] = &limit.Limit{CategoryID: 1, Value: decimal.RequireFromString(tt.limit)}
			svc := NewLimitService(store)

			status, err := svc.CheckLimit(context.Background(), uuid.Must(uuid.NewV4()), 1)

			require.NoError(t, err)
			assert.Equal(t, tt.exceeded, status.Exceeded)
		})
	}
}

func TestCheckAllLimits_DefaultsToCurrentMonth(t *testing.T) {
	store, _, _, limits, _ := fakeStorage()
	limits.usage = []*limit.CategoryUsage{
		{CategoryID: 1, CategoryName: "food", LimitValue: decimal.RequireFromString("500.00")},
	}
	svc := NewLimitService(store)
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }

	rows, err := svc.CheckAllLimits(context.Background(), uuid.Must(uuid.NewV4()), nil, nil)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "food", rows[0].CategoryName)
}

func TestCheckAllLimits_InvertedWindowRejected(t *testing.T) {
	store, _, _, _, _ := fakeStorage()
	svc := NewLimitService(store)

	start := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CheckAllLimits(context.Background(), uuid.Must(uuid.NewV4()), &start, &end)

	assert.True(t, errdefs.IsKind(err, errdefs.KindValidation))
}
