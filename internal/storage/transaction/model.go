package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction type tags. The column is an open string so new tags can appear
// without a migration, but these two are what the limit aggregation keys on.
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Transaction represents a single transaction row. An installment purchase is
// stored as InstallmentCount rows sharing one SequenceID, each with its own
// InternalID and InstallmentNumber (1-based); plain rows carry number 0.
type Transaction struct {
	InternalID         string
	SequenceID         int64
	ClientID           uuid.UUID
	Amount             decimal.Decimal
	Type               string
	MethodID           *int16
	CategoryID         *int16
	CardID             *int64
	Description        string
	Timestamp          time.Time
	InstallmentPayment bool
	InstallmentNumber  int
	InstallmentCount   int
	CreatedAt          time.Time
}

// TransactionInsert is the input for creating a new transaction row.
type TransactionInsert struct {
	InternalID         string
	SequenceID         int64
	ClientID           uuid.UUID
	Amount             decimal.Decimal
	Type               string
	MethodID           *int16
	CategoryID         *int16
	CardID             *int64
	Description        string
	Timestamp          time.Time
	InstallmentPayment bool
	InstallmentNumber  int
	InstallmentCount   int
}

// UpdateFields carries the columns a single-row update may touch. The struct
// doubles as the column allow-list: nothing outside it can be updated, and
// identity columns are not representable at all.
type UpdateFields struct {
	Amount      omit.Val[decimal.Decimal]
	Type        omit.Val[string]
	MethodID    omit.Val[int16]
	CategoryID  omit.Val[int16]
	CardID      omit.Val[int64]
	Description omit.Val[string]
	Timestamp   omit.Val[time.Time]
}

// IsEmpty reports whether no field is set.
func (f *UpdateFields) IsEmpty() bool {
	return !f.Amount.IsValue() && !f.Type.IsValue() && !f.MethodID.IsValue() &&
		!f.CategoryID.IsValue() && !f.CardID.IsValue() && !f.Description.IsValue() &&
		!f.Timestamp.IsValue()
}

// DeleteFilter selects the rows a delete removes. Every populated slice
// becomes an equality or IN predicate, all ANDed together and always scoped
// to the owning client.
type DeleteFilter struct {
	SequenceIDs  []int64
	Types        []string
	MethodIDs    []int16
	CategoryIDs  []int16
	CardIDs      []int64
	Descriptions []string
}

// IsEmpty reports whether the filter would match every row for the client.
func (f *DeleteFilter) IsEmpty() bool {
	return len(f.SequenceIDs) == 0 && len(f.Types) == 0 && len(f.MethodIDs) == 0 &&
		len(f.CategoryIDs) == 0 && len(f.CardIDs) == 0 && len(f.Descriptions) == 0
}

// FieldFilter is one (field, operator, value) predicate of an extract query.
// Field and operator are validated against allow-lists before query building.
type FieldFilter struct {
	Field    string
	Operator string
	Value    string
}

// ExtractParams selects the rows for a report extract. Detailed extracts join
// the reference tables so category and method names ride along.
type ExtractParams struct {
	ClientID uuid.UUID
	Start    time.Time
	End      time.Time
	Filters  []FieldFilter
	Detailed bool
}

// ExtractRow is one row of an extract result. Pointer fields are only
// populated for detailed extracts.
type ExtractRow struct {
	SequenceID   *int64
	Timestamp    time.Time
	Revenue      decimal.Decimal
	Description  *string
	CategoryID   *int16
	CategoryName *string
	MethodID     *int16
	MethodName   *string
	Type         *string
}

// CardActivity is one card-linked transaction within a month, enriched with
// reference-table names for the card listing.
type CardActivity struct {
	CardID             int64
	SequenceID         int64
	Type               string
	Amount             decimal.Decimal
	Description        string
	CategoryName       string
	MethodName         string
	Date               time.Time
	InstallmentPayment bool
	InstallmentNumber  int
}

// ITable defines the read-side interface for transaction storage operations.
type ITable interface {
	FindBySequenceID(ctx context.Context, clientID uuid.UUID, sequenceID int64) (*Transaction, error)
	SumExpensesForCategory(ctx context.Context, clientID uuid.UUID, categoryID int16, start, end time.Time) (decimal.Decimal, error)
	Extract(ctx context.Context, params *ExtractParams) ([]*ExtractRow, error)
	ListCardActivity(ctx context.Context, clientID uuid.UUID, start, end time.Time) ([]*CardActivity, error)
}

// IWriter extends the read side with the mutations actions perform inside a
// transaction.
type IWriter interface {
	ITable
	Insert(ctx context.Context, insert *TransactionInsert) error
	Update(ctx context.Context, clientID uuid.UUID, sequenceID int64, fields *UpdateFields) error
	Delete(ctx context.Context, clientID uuid.UUID, filter *DeleteFilter) (int64, error)
}
