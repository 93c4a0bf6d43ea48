package card

import (
	"context"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) Insert(ctx context.Context, insert *CardInsert) error {
	now := time.Now().UTC()
	query := psql.Insert(
		im.Into("cards",
			"internal_card_id", "card_id", "client_id", "card_name",
			"payment_day", "created_at", "updated_at",
		),
		im.Values(psql.Arg(
			insert.InternalID, insert.CardID, insert.ClientID, insert.Name,
			insert.PaymentDay, now, now,
		)),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}
