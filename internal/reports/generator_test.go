package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

func intPtr(v int) *int { return &v }

func datePtr(day string) *time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestGenerate_WindowValidation(t *testing.T) {
	store, clients, _ := fakeGeneratorStorage()
	addClient(clients, "tg-1")
	generator := NewGenerator(store)

	tests := []struct {
		name    string
		request ExtractRequest
	}{
		{
			name:    "start date and days before together",
			request: ExtractRequest{PlatformID: "tg-1", StartDate: datePtr("2025-06-01"), DaysBefore: intPtr(7)},
		},
		{
			name:    "neither start date nor days before",
			request: ExtractRequest{PlatformID: "tg-1"},
		},
		{
			name:    "negative days before",
			request: ExtractRequest{PlatformID: "tg-1", DaysBefore: intPtr(-1)},
		},
		{
			name:    "end before start",
			request: ExtractRequest{PlatformID: "tg-1", StartDate: datePtr("2025-06-10"), EndDate: datePtr("2025-06-01")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generator.Generate(context.Background(), &tt.request)
			assert.True(t, errdefs.IsKind(err, errdefs.KindValidation), "got %v", err)
		})
	}
}

func TestGenerate_InvalidAggregate(t *testing.T) {
	store, clients, _ := fakeGeneratorStorage()
	addClient(clients, "tg-1")
	generator := NewGenerator(store)

	_, err := generator.Generate(context.Background(), &ExtractRequest{
		PlatformID: "tg-1",
		StartDate:  datePtr("2025-06-01"),
		Aggregate:  "hour",
	})

	assert.True(t, errdefs.IsKind(err, errdefs.KindValidation))
}

func TestGenerate_ClientNotExists(t *testing.T) {
	store, _, _ := fakeGeneratorStorage()
	generator := NewGenerator(store)

	_, err := generator.Generate(context.Background(), &ExtractRequest{
		PlatformID: "ghost",
		StartDate:  datePtr("2025-06-01"),
	})

	assert.True(t, errdefs.IsKind(err, errdefs.KindClientNotExists))
}

func TestGenerate_EmptyResult(t *testing.T) {
	store, clients, _ := fakeGeneratorStorage()
	addClient(clients, "tg-1")
	generator := NewGenerator(store)

	_, err := generator.Generate(context.Background(), &ExtractRequest{
		PlatformID: "tg-1",
		StartDate:  datePtr("2025-06-01"),
	})

	assert.True(t, errdefs.IsKind(err, errdefs.KindEmptyResult))
}

func TestGenerate_PlainTable(t *testing.T) {
	store, clients, transactions := fakeGeneratorStorage()
	addClient(clients, "tg-1")
	transactions.rows = append(transactions.rows,
		extractRow("2025-06-01", "10.50"),
		extractRow("2025-06-02", "20.25"),
	)
	generator := NewGenerator(store)

	result, err := generator.Generate(context.Background(), &ExtractRequest{
		PlatformID: "tg-1",
		StartDate:  datePtr("2025-06-01"),
		EndDate:    datePtr("2025-06-02"),
	})

	require.NoError(t, err)
	expected := ",transaction_timestamp,transaction_revenue\n" +
		"0,2025-06-01,10.5\n" +
		"1,2025-06-02,20.25\n"
	assert.Equal(t, expected, result)

	// Plain extracts skip the reference-table joins.
	assert.False(t, transactions.lastParams.Detailed)
}

func TestGenerate_AggregateByDay(t *testing.T) {
	store, clients, transactions := fakeGeneratorStorage()
	addClient(clients, "tg-1")
	transactions.rows = append(transactions.rows,
		extractRow("2025-06-01", "10.00"),
		extractRow("2025-06-01", "5.00"),
		extractRow("2025-06-02", "20.00"),
	)
	generator := NewGenerator(store)

	result, err := generator.Generate(context.Background(), &ExtractRequest{
		PlatformID: "tg-1",
		StartDate:  datePtr("2025-06-01"),
		EndDate:    datePtr("2025-06-02"),
		Aggregate:  AggregateDay,
	})

	require.NoError(t, err)
	expected := ",transaction_timestamp,transaction_revenue\n" +
		"0,2025-06-01,15\n" +
		"1,2025-06-02,20\n"
	assert.Equal(t, expected, result)

	// Bucket sums only need timestamps and revenue; skip the joins.
	assert.False(t, transactions.lastParams.Detailed)
}

func TestGenerate_DetailedTable(t *testing.T) {
	store, clients, transactions := fakeGeneratorStorage()
	addClient(clients, "tg-1")

	seq := int64(7)
	categoryID := int16(1)
	categoryName := "food"
	methodID := int16(2)
	methodName := "debit"
	description := "groceries"
	txType := "expense"
	transactions.rows = append(transactions.rows, &transaction.ExtractRow{
		SequenceID:   &seq,
		Timestamp:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Revenue:      decimal.RequireFromString("10.50"),
		Description:  &description,
		CategoryID:   &categoryID,
		CategoryName: &categoryName,
		MethodID:     &methodID,
		MethodName:   &methodName,
		Type:         &txType,
	})
	generator := NewGenerator(store)

	result, err := generator.Generate(context.Background(), &ExtractRequest{
		PlatformID: "tg-1",
		StartDate:  datePtr("2025-06-01"),
		Detailed:   true,
	})

	require.NoError(t, err)
	expected := ",transaction_id,transaction_timestamp,transaction_revenue," +
		"payment_description,payment_category_id,payment_category_name," +
		"payment_method_id,payment_method_name,transaction_type\n" +
		"0,7,2025-06-01,10.5,groceries,1,food,2,debit,expense\n"
	assert.Equal(t, expected, result)
	assert.True(t, transactions.lastParams.Detailed)
}

func TestGenerate_AggregateByMonthAndYear(t *testing.T) {
	store, clients, transactions := fakeGeneratorStorage()
	addClient(clients, "tg-1")
	transactions.rows = append(transactions.rows,
		extractRow("2025-01-15", "10.00"),
		extractRow("2025-02-15", "20.00"),
		extractRow("2025-02-20", "30.00"),
	)
	generator := NewGenerator(store)

	result, err := generator.Generate(context.Background(), &ExtractRequest{
		PlatformID: "tg-1",
		StartDate:  datePtr("2025-01-01"),
		EndDate:    datePtr("2025-12-31"),
		Aggregate:  AggregateMonth,
	})
	require.NoError(t, err)
	assert.Contains(t, result, "0,2025-01,10\n")
	assert.Contains(t, result, "1,2025-02,50\n")

	result, err = generator.Generate(context.Background(), &ExtractRequest{
		PlatformID: "tg-1",
		StartDate:  datePtr("2025-01-01"),
		EndDate:    datePtr("2025-12-31"),
		Aggregate:  AggregateYear,
	})
	require.NoError(t, err)
	assert.Contains(t, result, "0,2025,60\n")
}

func TestGenerate_AggregateByWeek(t *testing.T) {
	store, clients, transactions := fakeGeneratorStorage()
	addClient(clients, "tg-1")
	// 2025-06-02 is a Monday, week 23; 2025-06-09 starts week 24.
	transactions.rows = append(transactions.rows,
		extractRow("2025-06-02", "10.00"),
		extractRow("2025-06-08", "5.00"),
		extractRow("2025-06-09", "20.00"),
	)
	generator := NewGenerator(store)

	result, err := generator.Generate(context.Background(), &ExtractRequest{
		PlatformID: "tg-1",
		StartDate:  datePtr("2025-06-01"),
		EndDate:    datePtr("2025-06-30"),
		Aggregate:  AggregateWeek,
	})

	require.NoError(t, err)
	assert.Contains(t, result, "0,2025-W23,15\n")
	assert.Contains(t, result, "1,2025-W24,20\n")
}

func TestGenerate_DaysBeforeWindow(t *testing.T) {
	store, clients, transactions := fakeGeneratorStorage()
	addClient(clients, "tg-1")
	transactions.rows = append(transactions.rows, extractRow("2025-06-10", "1.00"))
	generator := NewGenerator(store)
	generator.now = func() time.Time { return time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC) }

	_, err := generator.Generate(context.Background(), &ExtractRequest{
		PlatformID: "tg-1",
		DaysBefore: intPtr(7),
	})

	require.NoError(t, err)
	assert.True(t, transactions.lastParams.Start.Equal(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)))
	assert.True(t, transactions.lastParams.End.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestGenerate_EndDateDefaultsToStart(t *testing.T) {
	store, clients, transactions := fakeGeneratorStorage()
	addClient(clients, "tg-1")
	transactions.rows = append(transactions.rows, extractRow("2025-06-01", "1.00"))
	generator := NewGenerator(store)

	_, err := generator.Generate(context.Background(), &ExtractRequest{
		PlatformID: "tg-1",
		StartDate:  datePtr("2025-06-01"),
	})

	require.NoError(t, err)
	assert.True(t, transactions.lastParams.End.Equal(transactions.lastParams.Start))
}
