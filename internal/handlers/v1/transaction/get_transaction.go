package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage/client"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// GetTransactionInput is the Huma input for fetching a transaction.
type GetTransactionInput struct {
	PlatformID    string `query:"platformID" required:"true" doc:"External platform user identifier"`
	TransactionID int64  `query:"transactionID" required:"true" doc:"Client-scoped sequence id"`
}

// GetTransactionResponseBody is the response body for fetching a transaction.
// For an installment plan it reflects the first installment.
type GetTransactionResponseBody struct {
	TransactionID      int64  `json:"transactionID" doc:"Client-scoped sequence id"`
	InternalID         string `json:"internalID" doc:"Opaque internal row identifier"`
	Amount             string `json:"amount" doc:"Decimal amount"`
	Type               string `json:"type" doc:"Transaction type tag"`
	PaymentMethodID    *int16 `json:"paymentMethodID,omitempty" doc:"Payment method reference"`
	CategoryID         *int16 `json:"categoryID,omitempty" doc:"Payment category reference"`
	CardID             *int64 `json:"cardID,omitempty" doc:"Card reference"`
	Description        string `json:"description,omitempty" doc:"Free-text description"`
	Timestamp          string `json:"timestamp" doc:"RFC3339 effective date"`
	InstallmentPayment bool   `json:"installmentPayment" doc:"Whether the row belongs to an installment plan"`
	InstallmentNumber  int    `json:"installmentNumber,omitempty" doc:"1-based installment index, 0 for plain rows"`
	InstallmentCount   int    `json:"installmentCount,omitempty" doc:"Total installments in the plan"`
}

// GetTransactionOutput is the Huma output for fetching a transaction.
type GetTransactionOutput struct {
	Body GetTransactionResponseBody
}

// clientResolver is the interface for resolving a platform id to a client row.
type clientResolver interface {
	Info(ctx context.Context, platformID string) (*client.Client, error)
}

// transactionGetter is the interface for fetching a transaction by sequence id.
type transactionGetter interface {
	Get(ctx context.Context, clientID uuid.UUID, sequenceID int64) (*transaction.Transaction, error)
}

// GetTransactionHandler handles GET /v1/transaction.
type GetTransactionHandler struct {
	ClientService      clientResolver
	TransactionService transactionGetter
}

// NewGetTransactionHandler creates a new GetTransactionHandler.
func NewGetTransactionHandler(clients clientResolver, transactions transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{ClientService: clients, TransactionService: transactions}
}

// Register registers the get transaction endpoint with the Huma API.
func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction",
		Summary:     "Get transaction",
		Description: "Returns the transaction carrying the client-scoped sequence id.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	row, err := h.ClientService.Info(ctx, input.PlatformID)
	if err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	tx, err := h.TransactionService.Get(ctx, row.ID, input.TransactionID)
	if err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	return &GetTransactionOutput{
		Body: GetTransactionResponseBody{
			TransactionID:      tx.SequenceID,
			InternalID:         tx.InternalID,
			Amount:             tx.Amount.String(),
			Type:               tx.Type,
			PaymentMethodID:    tx.MethodID,
			CategoryID:         tx.CategoryID,
			CardID:             tx.CardID,
			Description:        tx.Description,
			Timestamp:          tx.Timestamp.Format(time.RFC3339),
			InstallmentPayment: tx.InstallmentPayment,
			InstallmentNumber:  tx.InstallmentNumber,
			InstallmentCount:   tx.InstallmentCount,
		},
	}, nil
}
