package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/operator/actions"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// UpdateTransactionBody is the request body for updating a transaction.
// Absent fields stay untouched.
type UpdateTransactionBody struct {
	PlatformID      string  `json:"platformID" required:"true" doc:"External platform user identifier"`
	TransactionID   int64   `json:"transactionID" required:"true" doc:"Client-scoped sequence id"`
	Amount          *string `json:"amount,omitempty" doc:"New decimal amount"`
	Type            *string `json:"type,omitempty" doc:"New transaction type tag"`
	PaymentMethodID *int16  `json:"paymentMethodID,omitempty" doc:"New payment method reference"`
	CategoryID      *int16  `json:"categoryID,omitempty" doc:"New payment category reference"`
	CardID          *int64  `json:"cardID,omitempty" doc:"New card reference"`
	Description     *string `json:"description,omitempty" doc:"New description"`
	Timestamp       *string `json:"timestamp,omitempty" doc:"New RFC3339 effective date"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	Body UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// UpdateTransactionHandler handles POST /v1/transaction/update.
type UpdateTransactionHandler struct {
	Operator actionProcessor
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(op actionProcessor) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/update",
		Summary:     "Update transaction",
		Description: "Updates selected fields of a single transaction. Installment rows are rejected.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateFields(body *UpdateTransactionBody) (transaction.UpdateFields, error) {
	var fields transaction.UpdateFields

	if body.Amount != nil {
		amount, err := decimal.NewFromString(*body.Amount)
		if err != nil {
			return fields, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		fields.Amount = omit.From(amount)
	}
	if body.Type != nil {
		fields.Type = omit.From(*body.Type)
	}
	if body.PaymentMethodID != nil {
		fields.MethodID = omit.From(*body.PaymentMethodID)
	}
	if body.CategoryID != nil {
		fields.CategoryID = omit.From(*body.CategoryID)
	}
	if body.CardID != nil {
		fields.CardID = omit.From(*body.CardID)
	}
	if body.Description != nil {
		fields.Description = omit.From(*body.Description)
	}
	if body.Timestamp != nil {
		parsed, err := time.Parse(time.RFC3339, *body.Timestamp)
		if err != nil {
			return fields, huma.NewError(http.StatusBadRequest, "invalid timestamp", err)
		}
		fields.Timestamp = omit.From(parsed)
	}
	return fields, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	fields, err := parseUpdateFields(&input.Body)
	if err != nil {
		return nil, err
	}

	action := &actions.UpdateTransaction{
		PlatformID: input.Body.PlatformID,
		SequenceID: input.Body.TransactionID,
		Fields:     fields,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	return &UpdateTransactionOutput{Status: http.StatusOK}, nil
}
