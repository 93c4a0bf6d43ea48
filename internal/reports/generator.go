package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// Aggregation modes. Each buckets timestamps to a period label and sums
// revenue per bucket.
const (
	AggregateDay   = "day"
	AggregateWeek  = "week"
	AggregateMonth = "month"
	AggregateYear  = "year"
)

// ExtractRequest is the flat parameter bag a report job is built from.
// Exactly one of StartDate or DaysBefore must be set.
type ExtractRequest struct {
	PlatformID string
	StartDate  *time.Time
	EndDate    *time.Time
	DaysBefore *int
	Filters    []transaction.FieldFilter
	Aggregate  string
	// Detailed requests the full-column table with category and method names
	// joined in. Ignored when aggregating; bucket sums only need timestamps
	// and revenue.
	Detailed bool
}

// Generator builds and runs one extract query, shaping the result into a
// row-indexed CSV table.
type Generator struct {
	storage *storage.Storage
	now     func() time.Time
}

func NewGenerator(store *storage.Storage) *Generator {
	return &Generator{
		storage: store,
		now:     time.Now,
	}
}

// Generate runs the extract for the request. An empty result set is the
// distinct EmptyResult failure, never a zero-row success table.
func (g *Generator) Generate(ctx context.Context, request *ExtractRequest) (string, error) {
	start, end, err := g.resolveWindow(request)
	if err != nil {
		return "", err
	}
	if err := validateAggregate(request.Aggregate); err != nil {
		return "", err
	}

	row, err := g.storage.Clients.FindByPlatformID(ctx, request.PlatformID)
	if err != nil {
		return "", err
	}
	if row == nil {
		return "", errdefs.ClientNotExists(request.PlatformID)
	}

	rows, err := g.storage.Transactions.Extract(ctx, &transaction.ExtractParams{
		ClientID: row.ID,
		Start:    start,
		End:      end,
		Filters:  request.Filters,
		Detailed: request.Detailed && request.Aggregate == "",
	})
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", errdefs.EmptyResult()
	}

	if request.Aggregate != "" {
		return renderAggregated(request.Aggregate, rows)
	}
	if request.Detailed {
		return renderDetailed(rows)
	}
	return renderPlain(rows)
}

// resolveWindow turns the request's date parameters into an inclusive date
// range. StartDate and DaysBefore are mutually exclusive and one is required;
// a missing EndDate collapses the window to the start day.
func (g *Generator) resolveWindow(request *ExtractRequest) (time.Time, time.Time, error) {
	hasStart := request.StartDate != nil
	hasDaysBefore := request.DaysBefore != nil

	switch {
	case hasStart && hasDaysBefore:
		return time.Time{}, time.Time{}, errdefs.Validation("start_date and days_before are mutually exclusive")
	case !hasStart && !hasDaysBefore:
		return time.Time{}, time.Time{}, errdefs.Validation("start_date or days_before must be provided")
	case hasDaysBefore:
		if *request.DaysBefore < 0 {
			return time.Time{}, time.Time{}, errdefs.Validation("days_before must not be negative, got %d", *request.DaysBefore)
		}
		now := g.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return today.AddDate(0, 0, -*request.DaysBefore), today, nil
	default:
		start := *request.StartDate
		end := start
		if request.EndDate != nil {
			end = *request.EndDate
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, errdefs.Validation("end_date must not be before start_date")
		}
		return start, end, nil
	}
}

func validateAggregate(mode string) error {
	switch mode {
	case "", AggregateDay, AggregateWeek, AggregateMonth, AggregateYear:
		return nil
	default:
		return errdefs.Validation("invalid aggregation mode %q", mode)
	}
}

// renderPlain serializes timestamp+revenue rows with a leading index column.
func renderPlain(rows []*transaction.ExtractRow) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"", "transaction_timestamp", "transaction_revenue"}); err != nil {
		return "", err
	}
	for i, row := range rows {
		record := []string{
			strconv.Itoa(i),
			row.Timestamp.Format("2006-01-02"),
			row.Revenue.String(),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

// detailedHeader mirrors the detailed extract query's column order.
var detailedHeader = []string{
	"", "transaction_id", "transaction_timestamp", "transaction_revenue",
	"payment_description", "payment_category_id", "payment_category_name",
	"payment_method_id", "payment_method_name", "transaction_type",
}

// renderDetailed serializes the full-column table. Reference-table names can
// be NULL for rows without a category or method.
func renderDetailed(rows []*transaction.ExtractRow) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(detailedHeader); err != nil {
		return "", err
	}
	for i, row := range rows {
		record := []string{
			strconv.Itoa(i),
			formatInt64Ptr(row.SequenceID),
			row.Timestamp.Format("2006-01-02"),
			row.Revenue.String(),
			stringOrEmpty(row.Description),
			formatInt16Ptr(row.CategoryID),
			stringOrEmpty(row.CategoryName),
			formatInt16Ptr(row.MethodID),
			stringOrEmpty(row.MethodName),
			stringOrEmpty(row.Type),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatInt64Ptr(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatInt16Ptr(v *int16) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(int64(*v), 10)
}

// renderAggregated buckets the rows by period and sums revenue per bucket.
func renderAggregated(mode string, rows []*transaction.ExtractRow) (string, error) {
	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		label := bucketLabel(mode, row.Timestamp)
		totals[label] = totals[label].Add(row.Revenue)
	}

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write([]string{"", "transaction_timestamp", "transaction_revenue"}); err != nil {
		return "", err
	}
	for i, label := range labels {
		record := []string{strconv.Itoa(i), label, totals[label].String()}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

// bucketLabel formats a timestamp as its period label. The formats sort
// lexically in chronological order.
func bucketLabel(mode string, t time.Time) string {
	switch mode {
	case AggregateWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case AggregateMonth:
		return t.Format("2006-01")
	case AggregateYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}
