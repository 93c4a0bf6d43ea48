package limit

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
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

// Upsert creates the limit for (client, category) or overwrites its value.
func (w *Writer) Upsert(ctx context.Context, clientID uuid.UUID, categoryID int16, value decimal.Decimal) error {
	now := time.Now().UTC()
	query := psql.Insert(
		im.Into("limits", "client_id", "category_id", "limit_value", "created_at", "updated_at"),
		im.Values(psql.Arg(clientID, categoryID, value, now, now)),
		im.OnConflict("client_id", "category_id").DoUpdate(
			im.SetExcluded("limit_value", "updated_at"),
		),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}
