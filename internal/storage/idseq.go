package storage

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/scan"
)

// Counter scopes. Each (client, scope) pair owns an independent sequence
// starting at 1.
const (
	ScopeTransaction = "transaction"
	ScopeCard        = "card"
)

// ISequences hands out client-scoped sequence ids. Next must run inside the
// same transaction as the insert consuming the id, so the row lock on the
// counter serializes concurrent creates for one client.
type ISequences interface {
	Next(ctx context.Context, clientID uuid.UUID, scope string) (int64, error)
}

const nextIDQuery = `
INSERT INTO id_counters (client_id, scope, last_id)
VALUES ($1, $2, 1)
ON CONFLICT (client_id, scope)
DO UPDATE SET last_id = id_counters.last_id + 1
RETURNING last_id`

type sequences struct {
	tx bob.Tx
}

func newSequences(tx bob.Tx) *sequences {
	return &sequences{tx: tx}
}

func (s *sequences) Next(ctx context.Context, clientID uuid.UUID, scope string) (int64, error) {
	query := psql.RawQuery(nextIDQuery, clientID, scope)
	return bob.One(ctx, s.tx, query, scan.SingleColumnMapper[int64])
}
