package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carteira-app/finance-server/internal/storage/card"
	"github.com/carteira-app/finance-server/internal/storage/catalog"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

func TestListCardsWithActivity_SplitsCreditAndDebit(t *testing.T) {
	store, _, transactions, _, cards := fakeStorage()
	clientID := uuid.Must(uuid.NewV4())

	cards.rows = []*card.Card{
		{CardID: 1, ClientID: clientID, Name: "nubank", PaymentDay: 10},
		{CardID: 2, ClientID: clientID, Name: "inter", PaymentDay: 5},
	}
	transactions.activity = []*transaction.CardActivity{
		{CardID: 1, SequenceID: 10, MethodName: catalog.MethodNameCredit, Amount: decimal.RequireFromString("50.00")},
		{CardID: 1, SequenceID: 11, MethodName: catalog.MethodNameDebit, Amount: decimal.RequireFromString("20.00")},
		{CardID: 1, SequenceID: 12, MethodName: catalog.MethodNameCredit, Amount: decimal.RequireFromString("30.00")},
		{CardID: 1, SequenceID: 13, MethodName: "pix", Amount: decimal.RequireFromString("15.00")},
	}

	svc := NewCardService(store)
	result, err := svc.ListCardsWithActivity(context.Background(), clientID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "nubank", result[0].Card.Name)
	assert.Len(t, result[0].Credit, 2)
	// The pix row is neither credit nor debit and does not appear.
	assert.Len(t, result[0].Debit, 1)

	// The second card had no activity in the month.
	assert.Empty(t, result[1].Credit)
	assert.Empty(t, result[1].Debit)
}

func TestListCardsWithActivity_NoCards(t *testing.T) {
	store, _, _, _, _ := fakeStorage()
	svc := NewCardService(store)

	result, err := svc.ListCardsWithActivity(context.Background(), uuid.Must(uuid.NewV4()), time.Now())

	require.NoError(t, err)
	assert.Empty(t, result)
}
