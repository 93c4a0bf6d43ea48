package limit

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/operator/actions"
)

// actionProcessor runs an action through the operator queue, blocking until
// it commits or rolls back.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateLimitBody is the request body for setting a spending limit.
type CreateLimitBody struct {
	PlatformID string `json:"platformID" required:"true" doc:"External platform user identifier"`
	CategoryID int16  `json:"categoryID" required:"true" doc:"Payment category the limit applies to"`
	Value      string `json:"value" required:"true" doc:"Decimal limit value"`
}

// CreateLimitInput is the Huma input for setting a spending limit.
type CreateLimitInput struct {
	Body CreateLimitBody
}

// CreateLimitOutput is the Huma output for setting a spending limit.
type CreateLimitOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// CreateLimitHandler handles POST /v1/limit.
type CreateLimitHandler struct {
	Operator actionProcessor
}

// NewCreateLimitHandler creates a new CreateLimitHandler.
func NewCreateLimitHandler(op actionProcessor) *CreateLimitHandler {
	return &CreateLimitHandler{Operator: op}
}

// Register registers the create limit endpoint with the Huma API.
func (h *CreateLimitHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-limit",
		Method:      http.MethodPost,
		Path:        "/v1/limit",
		Summary:     "Set spending limit",
		Description: "Creates or overwrites the spending limit for a category.",
		Tags:        []string{"Limits"},
	}, h.handle)
}

func (h *CreateLimitHandler) handle(ctx context.Context, input *CreateLimitInput) (*CreateLimitOutput, error) {
	value, err := decimal.NewFromString(input.Body.Value)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid value", err)
	}

	action := &actions.UpsertLimit{
		PlatformID: input.Body.PlatformID,
		CategoryID: input.Body.CategoryID,
		Value:      value,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	return &CreateLimitOutput{Status: http.StatusCreated}, nil
}
