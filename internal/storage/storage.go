package storage

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carteira-app/finance-server/internal/config"
	"github.com/carteira-app/finance-server/internal/storage/card"
	"github.com/carteira-app/finance-server/internal/storage/catalog"
	"github.com/carteira-app/finance-server/internal/storage/client"
	"github.com/carteira-app/finance-server/internal/storage/limit"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// Storage bundles the read-side table interfaces over one connection pool.
// Mutations go through Write, which opens a transaction-bound Writer.
type Storage struct {
	DB           *sql.DB
	bobDB        bob.DB
	Clients      client.ITable
	Transactions transaction.ITable
	Limits       limit.ITable
	Cards        card.ITable
	Catalog      catalog.ITable
}

func NewStorage(env *config.Config) *Storage {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		log.Fatal(err)
	}

	bobDB := bob.NewDB(db)
	return &Storage{
		DB:           db,
		bobDB:        bobDB,
		Clients:      client.NewReader(bobDB),
		Transactions: transaction.NewReader(bobDB),
		Limits:       limit.NewReader(bobDB),
		Cards:        card.NewReader(bobDB),
		Catalog:      catalog.NewReader(bobDB),
	}
}

// Write opens a transaction and returns a Writer bound to it. The caller owns
// Commit/Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
