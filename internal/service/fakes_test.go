package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/card"
	"github.com/carteira-app/finance-server/internal/storage/catalog"
	"github.com/carteira-app/finance-server/internal/storage/client"
	"github.com/carteira-app/finance-server/internal/storage/limit"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// fakeClientTable serves client rows keyed by platform id.
type fakeClientTable struct {
	rows map[string]*client.Client
}

func (f *fakeClientTable) FindByPlatformID(_ context.Context, platformID string) (*client.Client, error) {
	return f.rows[platformID], nil
}

func (f *fakeClientTable) FindByID(_ context.Context, id uuid.UUID) (*client.Client, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

// fakeTransactionTable returns canned aggregation results.
type fakeTransactionTable struct {
	spent    decimal.Decimal
	activity []*transaction.CardActivity
}

func (f *fakeTransactionTable) FindBySequenceID(_ context.Context, _ uuid.UUID, _ int64) (*transaction.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionTable) SumExpensesForCategory(_ context.Context, _ uuid.UUID, _ int16, _, _ time.Time) (decimal.Decimal, error) {
	return f.spent, nil
}

func (f *fakeTransactionTable) Extract(_ context.Context, _ *transaction.ExtractParams) ([]*transaction.ExtractRow, error) {
	return nil, nil
}

func (f *fakeTransactionTable) ListCardActivity(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*transaction.CardActivity, error) {
	return f.activity, nil
}

// fakeLimitTable serves limit rows keyed by category id.
type fakeLimitTable struct {
	rows  map[int16]*limit.Limit
	usage []*limit.CategoryUsage
}

func (f *fakeLimitTable) Get(_ context.Context, _ uuid.UUID, categoryID int16) (*limit.Limit, error) {
	return f.rows[categoryID], nil
}

func (f *fakeLimitTable) CheckAll(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*limit.CategoryUsage, error) {
	return f.usage, nil
}

// fakeCardTable serves card rows in insertion order.
type fakeCardTable struct {
	rows []*card.Card
}

func (f *fakeCardTable) FindBySequenceID(_ context.Context, _ uuid.UUID, cardID int64) (*card.Card, error) {
	for _, row := range f.rows {
		if row.CardID == cardID {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeCardTable) List(_ context.Context, _ uuid.UUID) ([]*card.Card, error) {
	return f.rows, nil
}

// fakeCatalogTable serves the seeded reference rows.
type fakeCatalogTable struct{}

func (fakeCatalogTable) MethodByID(_ context.Context, id int16) (*catalog.Method, error) {
	names := map[int16]string{1: catalog.MethodNameCredit, 2: catalog.MethodNameDebit}
	name, ok := names[id]
	if !ok {
		return nil, nil
	}
	return &catalog.Method{ID: id, Name: name}, nil
}

func (fakeCatalogTable) CategoryByID(_ context.Context, id int16) (*catalog.Category, error) {
	names := map[int16]string{1: "food", 2: "transport"}
	name, ok := names[id]
	if !ok {
		return nil, nil
	}
	return &catalog.Category{ID: id, Name: name}, nil
}

func (fakeCatalogTable) ListMethods(_ context.Context) ([]*catalog.Method, error) {
	return nil, nil
}

func (fakeCatalogTable) ListCategories(_ context.Context) ([]*catalog.Category, error) {
	return nil, nil
}

func fakeStorage() (*storage.Storage, *fakeClientTable, *fakeTransactionTable, *fakeLimitTable, *fakeCardTable) {
	clients := &fakeClientTable{rows: make(map[string]*client.Client)}
	transactions := &fakeTransactionTable{}
	limits := &fakeLimitTable{rows: make(map[int16]*limit.Limit)}
	cards := &fakeCardTable{}

	store := &storage.Storage{
		Clients:      clients,
		Transactions: transactions,
		Limits:       limits,
		Cards:        cards,
		Catalog:      fakeCatalogTable{},
	}
	return store, clients, transactions, limits, cards
}
