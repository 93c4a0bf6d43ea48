package card

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Card is a registered payment card. CardID is a per-client sequence handed
// out by the id counter, small enough to quote back in chat flows.
type Card struct {
	InternalID uuid.UUID
	CardID     int64
	ClientID   uuid.UUID
	Name       string
	PaymentDay int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CardInsert is the input for registering a new card.
type CardInsert struct {
	InternalID uuid.UUID
	CardID     int64
	ClientID   uuid.UUID
	Name       string
	PaymentDay int
}

// ITable defines the read-side interface for card storage operations.
type ITable interface {
	FindBySequenceID(ctx context.Context, clientID uuid.UUID, cardID int64) (*Card, error)
	List(ctx context.Context, clientID uuid.UUID) ([]*Card, error)
}

// IWriter extends the read side with the insert actions perform inside a
// transaction.
type IWriter interface {
	ITable
	Insert(ctx context.Context, insert *CardInsert) error
}
