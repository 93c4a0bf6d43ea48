package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/logging"
	"github.com/carteira-app/finance-server/internal/operator/actions"
)

// actionProcessor runs an action through the operator queue, blocking until
// it commits or rolls back.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	PlatformID       string `json:"platformID" required:"true" doc:"External platform user identifier"`
	Amount           string `json:"amount" required:"true" doc:"Decimal amount"`
	Type             string `json:"type" required:"true" doc:"Transaction type tag, e.g. expense or income"`
	Timestamp        string `json:"timestamp,omitempty" doc:"RFC3339 effective date, defaults to now"`
	PaymentMethodID  *int16 `json:"paymentMethodID,omitempty" doc:"Payment method reference"`
	CategoryID       *int16 `json:"categoryID,omitempty" doc:"Payment category reference"`
	CardID           *int64 `json:"cardID,omitempty" doc:"Card reference (client-scoped card id)"`
	Description      string `json:"description,omitempty" doc:"Free-text description"`
	Installment      bool   `json:"installment,omitempty" doc:"Whether this is an installment purchase"`
	InstallmentCount int    `json:"installmentCount,omitempty" doc:"Number of installments, required when installment is true"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponseBody is the response body for creating a transaction.
type CreateTransactionResponseBody struct {
	TransactionID    int64  `json:"transactionID" doc:"Client-scoped sequence id shared by every installment row"`
	InternalID       string `json:"internalID" doc:"Opaque internal row identifier"`
	Amount           string `json:"amount" doc:"Amount of the first inserted row"`
	Timestamp        string `json:"timestamp" doc:"RFC3339 effective date of the first inserted row"`
	InstallmentCount int    `json:"installmentCount,omitempty" doc:"Number of rows inserted for an installment plan"`
	LimitValue       string `json:"limitValue,omitempty" doc:"Configured spending limit for the category, when one exists"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body CreateTransactionResponseBody
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator actionProcessor
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op actionProcessor) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Inserts a transaction, expanding installment purchases into one dated row per installment.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var timestamp *time.Time
	if input.Body.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, input.Body.Timestamp)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid timestamp", err)
		}
		timestamp = &parsed
	}

	action := &actions.CreateTransaction{
		PlatformID:       input.Body.PlatformID,
		Amount:           amount,
		Type:             input.Body.Type,
		Timestamp:        timestamp,
		MethodID:         input.Body.PaymentMethodID,
		CategoryID:       input.Body.CategoryID,
		CardID:           input.Body.CardID,
		Description:      input.Body.Description,
		Installment:      input.Body.Installment,
		InstallmentCount: input.Body.InstallmentCount,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionID", action.Result.SequenceID)
	}

	body := CreateTransactionResponseBody{
		TransactionID:    action.Result.SequenceID,
		InternalID:       action.Result.InternalID,
		Amount:           action.Result.Amount.String(),
		Timestamp:        action.Result.Timestamp.Format(time.RFC3339),
		InstallmentCount: action.Result.InstallmentCount,
	}
	if action.Result.LimitValue != nil {
		body.LimitValue = action.Result.LimitValue.String()
	}
	return &CreateTransactionOutput{Body: body}, nil
}
