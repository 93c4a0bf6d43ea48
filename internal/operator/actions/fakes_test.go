package actions

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

// fakeClients is an in-memory client.IWriter.
type fakeClients struct {
	rows     map[string]*client.Client
	upserts  []*client.ClientUpsert
	granted  []uuid.UUID
	revoked  []uuid.UUID
	grantEnd time.Time
}

func newFakeClients() *fakeClients {
	return &fakeClients{rows: make(map[string]*client.Client)}
}

func (f *fakeClients) FindByPlatformID(_ context.Context, platformID string) (*client.Client, error) {
	return f.rows[platformID], nil
}

func (f *fakeClients) FindByID(_ context.Context, id uuid.UUID) (*client.Client, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeClients) Upsert(_ context.Context, upsert *client.ClientUpsert) error {
	f.upserts = append(f.upserts, upsert)
	return nil
}

func (f *fakeClients) GrantSubscription(_ context.Context, id uuid.UUID, _, end time.Time) error {
	f.granted = append(f.granted, id)
	f.grantEnd = end
	return nil
}

func (f *fakeClients) RevokeSubscription(_ context.Context, id uuid.UUID) error {
	f.revoked = append(f.revoked, id)
	return nil
}

// fakeTransactions is an in-memory transaction.IWriter.
type fakeTransactions struct {
	inserts  []*transaction.TransactionInsert
	existing *transaction.Transaction
	updates  []*transaction.UpdateFields
	deletes  []*transaction.DeleteFilter
	deleted  int64
}

func (f *fakeTransactions) FindBySequenceID(_ context.Context, _ uuid.UUID, _ int64) (*transaction.Transaction, error) {
	return f.existing, nil
}

func (f *fakeTransactions) SumExpensesForCategory(_ context.Context, _ uuid.UUID, _ int16, _, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeTransactions) Extract(_ context.Context, _ *transaction.ExtractParams) ([]*transaction.ExtractRow, error) {
	return nil, nil
}

func (f *fakeTransactions) ListCardActivity(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*transaction.CardActivity, error) {
	return nil, nil
}

func (f *fakeTransactions) Insert(_ context.Context, insert *transaction.TransactionInsert) error {
	f.inserts = append(f.inserts, insert)
	return nil
}

func (f *fakeTransactions) Update(_ context.Context, _ uuid.UUID, _ int64, fields *transaction.UpdateFields) error {
	f.updates = append(f.updates, fields)
	return nil
}

func (f *fakeTransactions) Delete(_ context.Context, _ uuid.UUID, filter *transaction.DeleteFilter) (int64, error) {
	f.deletes = append(f.deletes, filter)
	return f.deleted, nil
}

// fakeLimits is an in-memory limit.IWriter.
type fakeLimits struct {
	rows    map[int16]*limit.Limit
	upserts []decimal.Decimal
}

func newFakeLimits() *fakeLimits {
	return &fakeLimits{rows: make(map[int16]*limit.Limit)}
}

func (f *fakeLimits) Get(_ context.Context, _ uuid.UUID, categoryID int16) (*limit.Limit, error) {
	return f.rows[categoryID], nil
}

func (f *fakeLimits) CheckAll(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*limit.CategoryUsage, error) {
	return nil, nil
}

func (f *fakeLimits) Upsert(_ context.Context, _ uuid.UUID, categoryID int16, value decimal.Decimal) error {
	f.upserts = append(f.upserts, value)
	f.rows[categoryID] = &limit.Limit{CategoryID: categoryID, Value: value}
	return nil
}

// fakeCards is an in-memory card.IWriter.
type fakeCards struct {
	rows    map[int64]*card.Card
	inserts []*card.CardInsert
}

func newFakeCards() *fakeCards {
	return &fakeCards{rows: make(map[int64]*card.Card)}
}

func (f *fakeCards) FindBySequenceID(_ context.Context, _ uuid.UUID, cardID int64) (*card.Card, error) {
	return f.rows[cardID], nil
}

func (f *fakeCards) List(_ context.Context, _ uuid.UUID) ([]*card.Card, error) {
	cards := make([]*card.Card, 0, len(f.rows))
	for _, row := range f.rows {
		cards = append(cards, row)
	}
	return cards, nil
}

func (f *fakeCards) Insert(_ context.Context, insert *card.CardInsert) error {
	f.inserts = append(f.inserts, insert)
	f.rows[insert.CardID] = &card.Card{
		InternalID: insert.InternalID,
		CardID:     insert.CardID,
		ClientID:   insert.ClientID,
		Name:       insert.Name,
		PaymentDay: insert.PaymentDay,
	}
	return nil
}

// fakeCatalog serves the seeded reference rows.
type fakeCatalog struct{}

var fakeMethods = map[int16]string{1: catalog.MethodNameCredit, 2: catalog.MethodNameDebit, 3: "cash", 4: "pix"}
var fakeCategories = map[int16]string{1: "food", 2: "transport", 3: "housing", 7: "other"}

func (fakeCatalog) MethodByID(_ context.Context, id int16) (*catalog.Method, error) {
	name, ok := fakeMethods[id]
	if !ok {
		return nil, nil
	}
	return &catalog.Method{ID: id, Name: name}, nil
}

func (fakeCatalog) CategoryByID(_ context.Context, id int16) (*catalog.Category, error) {
	name, ok := fakeCategories[id]
	if !ok {
		return nil, nil
	}
	return &catalog.Category{ID: id, Name: name}, nil
}

func (fakeCatalog) ListMethods(_ context.Context) ([]*catalog.Method, error) {
	return nil, nil
}

func (fakeCatalog) ListCategories(_ context.Context) ([]*catalog.Category, error) {
	return nil, nil
}

// fakeSequences hands out ids from an in-memory counter.
type fakeSequences struct {
	counters map[string]int64
}

func newFakeSequences() *fakeSequences {
	return &fakeSequences{counters: make(map[string]int64)}
}

func (f *fakeSequences) Next(_ context.Context, clientID uuid.UUID, scope string) (int64, error) {
	key := clientID.String() + ":" + scope
	f.counters[key]++
	return f.counters[key], nil
}

// testFixture bundles the fakes behind a storage.Writer.
type testFixture struct {
	writer       *storage.Writer
	clients      *fakeClients
	transactions *fakeTransactions
	limits       *fakeLimits
	cards        *fakeCards
	sequences    *fakeSequences
}

func newTestFixture() *testFixture {
	clients := newFakeClients()
	transactions := &fakeTransactions{}
	limits := newFakeLimits()
	cards := newFakeCards()
	sequences := newFakeSequences()

	return &testFixture{
		writer: &storage.Writer{
			Clients:      clients,
			Transactions: transactions,
			Limits:       limits,
			Cards:        cards,
			Catalog:      fakeCatalog{},
			Sequences:    sequences,
		},
		clients:      clients,
		transactions: transactions,
		limits:       limits,
		cards:        cards,
		sequences:    sequences,
	}
}

func cardFixture(clientID uuid.UUID, cardID int64, paymentDay int) *card.Card {
	return &card.Card{
		InternalID: uuid.Must(uuid.NewV4()),
		CardID:     cardID,
		ClientID:   clientID,
		Name:       "nubank",
		PaymentDay: paymentDay,
	}
}

// addClient registers a client row, subscribed through next year.
func (f *testFixture) addClient(platformID string, subscribed bool) *client.Client {
	end := time.Now().AddDate(1, 0, 0)
	row := &client.Client{
		ID:           uuid.Must(uuid.NewV4()),
		PlatformID:   platformID,
		PlatformName: "telegram",
		Subscribed:   subscribed,
		SubsEnd:      &end,
	}
	f.clients.rows[platformID] = row
	return row
}
