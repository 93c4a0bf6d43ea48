package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/operator/actions"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// DeleteTransactionBody is the request body for deleting transactions. Every
// populated list becomes a predicate; all predicates are ANDed together and
// the delete is always scoped to the caller's client.
type DeleteTransactionBody struct {
	PlatformID      string   `json:"platformID" required:"true" doc:"External platform user identifier"`
	TransactionIDs  []int64  `json:"transactionIDs,omitempty" doc:"Client-scoped sequence ids"`
	Types           []string `json:"types,omitempty" doc:"Transaction type tags"`
	PaymentMethodID []int16  `json:"paymentMethodIDs,omitempty" doc:"Payment method references"`
	CategoryIDs     []int16  `json:"categoryIDs,omitempty" doc:"Payment category references"`
	CardIDs         []int64  `json:"cardIDs,omitempty" doc:"Card references"`
	Descriptions    []string `json:"descriptions,omitempty" doc:"Exact description matches"`
}

// DeleteTransactionInput is the Huma input for deleting transactions.
type DeleteTransactionInput struct {
	Body DeleteTransactionBody
}

// DeleteTransactionResponseBody is the response body for deleting transactions.
type DeleteTransactionResponseBody struct {
	Deleted int64 `json:"deleted" doc:"Number of rows removed"`
}

// DeleteTransactionOutput is the Huma output for deleting transactions.
type DeleteTransactionOutput struct {
	Body DeleteTransactionResponseBody
}

// DeleteTransactionHandler handles POST /v1/transaction/delete.
type DeleteTransactionHandler struct {
	Operator actionProcessor
}

// NewDeleteTransactionHandler creates a new DeleteTransactionHandler.
func NewDeleteTransactionHandler(op actionProcessor) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{Operator: op}
}

// Register registers the delete transaction endpoint with the Huma API.
func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/delete",
		Summary:     "Delete transactions",
		Description: "Deletes the transactions matching the filter, scoped to the caller's client.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	action := &actions.DeleteTransaction{
		PlatformID: input.Body.PlatformID,
		Filter: transaction.DeleteFilter{
			SequenceIDs:  input.Body.TransactionIDs,
			Types:        input.Body.Types,
			MethodIDs:    input.Body.PaymentMethodID,
			CategoryIDs:  input.Body.CategoryIDs,
			CardIDs:      input.Body.CardIDs,
			Descriptions: input.Body.Descriptions,
		},
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	return &DeleteTransactionOutput{
		Body: DeleteTransactionResponseBody{Deleted: action.ResultDeleted},
	}, nil
}
