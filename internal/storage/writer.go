package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carteira-app/finance-server/internal/storage/card"
	"github.com/carteira-app/finance-server/internal/storage/catalog"
	"github.com/carteira-app/finance-server/internal/storage/client"
	"github.com/carteira-app/finance-server/internal/storage/limit"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// Writer exposes every table's write interface bound to a single transaction,
// so one action's reads and writes see and produce a consistent state.
type Writer struct {
	tx           bob.Tx
	Clients      client.IWriter
	Transactions transaction.IWriter
	Limits       limit.IWriter
	Cards        card.IWriter
	Catalog      catalog.ITable
	Sequences    ISequences
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Clients:      client.NewWriter(tx),
		Transactions: transaction.NewWriter(tx),
		Limits:       limit.NewWriter(tx),
		Cards:        card.NewWriter(tx),
		Catalog:      catalog.NewReader(tx),
		Sequences:    newSequences(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
