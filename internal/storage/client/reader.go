package client

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type clientRow struct {
	ID           uuid.UUID  `db:"client_id"`
	PlatformID   string     `db:"platform_id"`
	PlatformName string     `db:"platform_name"`
	Name         *string    `db:"name"`
	Phone        *string    `db:"phone"`
	Subscribed   bool       `db:"subscribed"`
	SubsStart    *time.Time `db:"subs_start_timestamp"`
	SubsEnd      *time.Time `db:"subs_end_timestamp"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func rowToClient(row *clientRow) *Client {
	converted := &Client{
		ID:           row.ID,
		PlatformID:   row.PlatformID,
		PlatformName: row.PlatformName,
		Subscribed:   row.Subscribed,
		SubsStart:    row.SubsStart,
		SubsEnd:      row.SubsEnd,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.Name != nil {
		converted.Name = *row.Name
	}
	if row.Phone != nil {
		converted.Phone = *row.Phone
	}
	return converted
}

var columns = []any{
	"client_id", "platform_id", "platform_name", "name", "phone",
	"subscribed", "subs_start_timestamp", "subs_end_timestamp",
	"created_at", "updated_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByPlatformID looks a client up by its external platform identifier.
// Absence is reported as (nil, nil), not an error: callers decide whether a
// missing client is exceptional.
func (r *Reader) FindByPlatformID(ctx context.Context, platformID string) (*Client, error) {
	return r.findOne(ctx, sm.Where(psql.Quote("platform_id").EQ(psql.Arg(platformID))))
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	return r.findOne(ctx, sm.Where(psql.Quote("client_id").EQ(psql.Arg(id))))
}

func (r *Reader) findOne(ctx context.Context, where bob.Mod[*dialect.SelectQuery]) (*Client, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("clients"),
		where,
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[clientRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToClient(&row), nil
}
