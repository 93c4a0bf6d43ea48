package card

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/operator/actions"
)

// actionProcessor runs an action through the operator queue, blocking until
// it commits or rolls back.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateCardBody is the request body for registering a card.
type CreateCardBody struct {
	PlatformID string `json:"platformID" required:"true" doc:"External platform user identifier"`
	Name       string `json:"name" required:"true" doc:"Card display name"`
	PaymentDay int    `json:"paymentDay" required:"true" minimum:"1" maximum:"31" doc:"Monthly payment day"`
}

// CreateCardInput is the Huma input for registering a card.
type CreateCardInput struct {
	Body CreateCardBody
}

// CreateCardResponseBody is the response body for registering a card.
type CreateCardResponseBody struct {
	CardID int64 `json:"cardID" doc:"Client-scoped card id"`
}

// CreateCardOutput is the Huma output for registering a card.
type CreateCardOutput struct {
	Body CreateCardResponseBody
}

// CreateCardHandler handles POST /v1/card.
type CreateCardHandler struct {
	Operator actionProcessor
}

// NewCreateCardHandler creates a new CreateCardHandler.
func NewCreateCardHandler(op actionProcessor) *CreateCardHandler {
	return &CreateCardHandler{Operator: op}
}

// Register registers the create card endpoint with the Huma API.
func (h *CreateCardHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-card",
		Method:      http.MethodPost,
		Path:        "/v1/card",
		Summary:     "Register card",
		Description: "Registers a payment card for the client.",
		Tags:        []string{"Cards"},
	}, h.handle)
}

func (h *CreateCardHandler) handle(ctx context.Context, input *CreateCardInput) (*CreateCardOutput, error) {
	action := &actions.CreateCard{
		PlatformID: input.Body.PlatformID,
		Name:       input.Body.Name,
		PaymentDay: input.Body.PaymentDay,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	return &CreateCardOutput{Body: CreateCardResponseBody{CardID: action.ResultCardID}}, nil
}
