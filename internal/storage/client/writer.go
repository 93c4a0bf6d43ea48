package client

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
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

// Upsert inserts the client or, when the (platform_id, platform_name) pair
// already exists, refreshes the mutable profile fields. The internal ID of an
// existing row is never replaced.
func (w *Writer) Upsert(ctx context.Context, upsert *ClientUpsert) error {
	now := time.Now()
	query := psql.Insert(
		im.Into("clients",
			"client_id", "platform_id", "platform_name",
			"name", "phone", "created_at", "updated_at",
		),
		im.Values(psql.Arg(
			upsert.ID, upsert.PlatformID, upsert.PlatformName,
			upsert.Name, upsert.Phone, now, now,
		)),
		im.OnConflict("platform_id", "platform_name").
			DoUpdate(im.SetExcluded("name", "phone", "updated_at")),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}

func (w *Writer) GrantSubscription(ctx context.Context, id uuid.UUID, start, end time.Time) error {
	query := psql.Update(
		um.Table("clients"),
		um.SetCol("subscribed").ToArg(true),
		um.SetCol("subs_start_timestamp").ToArg(start),
		um.SetCol("subs_end_timestamp").ToArg(end),
		um.SetCol("updated_at").ToArg(time.Now()),
		um.Where(psql.Quote("client_id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}

// RevokeSubscription clears the subscribed flag and nothing else; the
// subscription window timestamps are kept for history.
func (w *Writer) RevokeSubscription(ctx context.Context, id uuid.UUID) error {
	query := psql.Update(
		um.Table("clients"),
		um.SetCol("subscribed").ToArg(false),
		um.SetCol("updated_at").ToArg(time.Now()),
		um.Where(psql.Quote("client_id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}
