package reports

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/client"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

type fakeClientTable struct {
	rows map[string]*client.Client
}

func (f *fakeClientTable) FindByPlatformID(_ context.Context, platformID string) (*client.Client, error) {
	return f.rows[platformID], nil
}

func (f *fakeClientTable) FindByID(_ context.Context, _ uuid.UUID) (*client.Client, error) {
	return nil, nil
}

// fakeTransactionTable serves canned extract rows. A non-nil block channel
// stalls Extract until the channel closes, for exercising a busy worker pool.
type fakeTransactionTable struct {
	rows       []*transaction.ExtractRow
	err        error
	lastParams *transaction.ExtractParams
	block      chan struct{}
}

func (f *fakeTransactionTable) FindBySequenceID(_ context.Context, _ uuid.UUID, _ int64) (*transaction.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionTable) SumExpensesForCategory(_ context.Context, _ uuid.UUID, _ int16, _, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeTransactionTable) Extract(_ context.Context, params *transaction.ExtractParams) ([]*transaction.ExtractRow, error) {
	if f.block != nil {
		<-f.block
	}
	f.lastParams = params
	return f.rows, f.err
}

func (f *fakeTransactionTable) ListCardActivity(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*transaction.CardActivity, error) {
	return nil, nil
}

func fakeGeneratorStorage() (*storage.Storage, *fakeClientTable, *fakeTransactionTable) {
	clients := &fakeClientTable{rows: make(map[string]*client.Client)}
	transactions := &fakeTransactionTable{}
	store := &storage.Storage{
		Clients:      clients,
		Transactions: transactions,
	}
	return store, clients, transactions
}

func addClient(clients *fakeClientTable, platformID string) *client.Client {
	row := &client.Client{
		ID:         uuid.Must(uuid.NewV4()),
		PlatformID: platformID,
	}
	clients.rows[platformID] = row
	return row
}

func extractRow(day string, revenue string) *transaction.ExtractRow {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return &transaction.ExtractRow{
		Timestamp: t,
		Revenue:   decimal.RequireFromString(revenue),
	}
}
