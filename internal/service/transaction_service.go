package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// TransactionService handles transaction read paths.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// Get returns the transaction carrying the client-scoped sequence id. For an
// installment plan that is the first installment.
func (s *TransactionService) Get(ctx context.Context, clientID uuid.UUID, sequenceID int64) (*transaction.Transaction, error) {
	row, err := s.storage.Transactions.FindBySequenceID(ctx, clientID, sequenceID)
	if err != nil {
		return nil, errdefs.Store(err)
	}
	if row == nil {
		return nil, errdefs.TransactionNotExists(sequenceID, clientID.String())
	}
	return row, nil
}
