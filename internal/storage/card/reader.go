package card

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type cardRow struct {
	InternalID uuid.UUID `db:"internal_card_id"`
	CardID     int64     `db:"card_id"`
	ClientID   uuid.UUID `db:"client_id"`
	Name       string    `db:"card_name"`
	PaymentDay int       `db:"payment_day"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func rowToCard(row *cardRow) *Card {
	return &Card{
		InternalID: row.InternalID,
		CardID:     row.CardID,
		ClientID:   row.ClientID,
		Name:       row.Name,
		PaymentDay: row.PaymentDay,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

var columns = []any{
	"internal_card_id", "card_id", "client_id", "card_name", "payment_day",
	"created_at", "updated_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindBySequenceID looks up a card by its client-scoped id. Absence is
// (nil, nil).
func (r *Reader) FindBySequenceID(ctx context.Context, clientID uuid.UUID, cardID int64) (*Card, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("cards"),
		sm.Where(psql.Quote("client_id").EQ(psql.Arg(clientID))),
		sm.Where(psql.Quote("card_id").EQ(psql.Arg(cardID))),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[cardRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToCard(&row), nil
}

// List returns every card the client registered, oldest first.
func (r *Reader) List(ctx context.Context, clientID uuid.UUID) ([]*Card, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("cards"),
		sm.Where(psql.Quote("client_id").EQ(psql.Arg(clientID))),
		sm.OrderBy("card_id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[cardRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Card, len(rows))
	for i := range rows {
		result[i] = rowToCard(&rows[i])
	}
	return result, nil
}
