package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carteira-app/finance-server/internal/dates"
	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/catalog"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// CardService handles card read paths.
type CardService struct {
	storage *storage.Storage
}

// NewCardService creates a new CardService.
func NewCardService(store *storage.Storage) *CardService {
	return &CardService{storage: store}
}

// ListCardsWithActivity returns every registered card enriched with its
// transactions inside the given month, split into credit and debit lists by
// payment-method tag.
func (s *CardService) ListCardsWithActivity(ctx context.Context, clientID uuid.UUID, month time.Time) ([]*CardWithActivity, error) {
	cards, err := s.storage.Cards.List(ctx, clientID)
	if err != nil {
		return nil, errdefs.Store(err)
	}

	start, end := dates.MonthWindow(month)
	activity, err := s.storage.Transactions.ListCardActivity(ctx, clientID, start, end)
	if err != nil {
		return nil, errdefs.Store(err)
	}

	byCard := make(map[int64][]*transaction.CardActivity, len(cards))
	for _, row := range activity {
		byCard[row.CardID] = append(byCard[row.CardID], row)
	}

	result := make([]*CardWithActivity, len(cards))
	for i, c := range cards {
		enriched := &CardWithActivity{Card: c}
		// Only credit and debit belong on a card statement; cash and pix
		// rows that happen to carry a card id are skipped.
		for _, row := range byCard[c.CardID] {
			switch row.MethodName {
			case catalog.MethodNameCredit:
				enriched.Credit = append(enriched.Credit, row)
			case catalog.MethodNameDebit:
				enriched.Debit = append(enriched.Debit, row)
			}
		}
		result[i] = enriched
	}
	return result, nil
}
