package service

import (
	"github.com/carteira-app/finance-server/internal/storage/card"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// CardWithActivity pairs a registered card with its month's transactions,
// partitioned by payment-method tag.
type CardWithActivity struct {
	Card   *card.Card
	Credit []*transaction.CardActivity
	Debit  []*transaction.CardActivity
}
