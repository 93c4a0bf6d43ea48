package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/card"
)

// CreateCard registers a card for the client. The card id comes from the
// same per-client counter mechanism transactions use, under scope "card".
type CreateCard struct {
	PlatformID string
	Name       string
	PaymentDay int

	ResultCardID int64

	IAction
}

func (a *CreateCard) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := requireClient(ctx, writer, a.PlatformID)
	if err != nil {
		return err
	}
	if err := requireSubscription(row); err != nil {
		return err
	}

	if a.Name == "" {
		return errdefs.Validation("card name is required")
	}
	if a.PaymentDay < 1 || a.PaymentDay > 31 {
		return errdefs.Validation("card payment day must be between 1 and 31, got %d", a.PaymentDay)
	}

	cardID, err := writer.Sequences.Next(ctx, row.ID, storage.ScopeCard)
	if err != nil {
		return err
	}
	internalID, err := uuid.NewV4()
	if err != nil {
		return err
	}

	err = writer.Cards.Insert(ctx, &card.CardInsert{
		InternalID: internalID,
		CardID:     cardID,
		ClientID:   row.ID,
		Name:       a.Name,
		PaymentDay: a.PaymentDay,
	})
	if err != nil {
		return err
	}

	a.ResultCardID = cardID
	return nil
}
