package subscription

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/operator/actions"
)

// RevokeSubscriptionBody is the request body for revoking a subscription.
type RevokeSubscriptionBody struct {
	PlatformID string `json:"platformID" required:"true" doc:"External platform user identifier"`
}

// RevokeSubscriptionInput is the Huma input for revoking a subscription.
type RevokeSubscriptionInput struct {
	Body RevokeSubscriptionBody
}

// RevokeSubscriptionOutput is the Huma output for revoking a subscription.
type RevokeSubscriptionOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// RevokeSubscriptionHandler handles POST /v1/subscription/revoke.
type RevokeSubscriptionHandler struct {
	Operator actionProcessor
}

// NewRevokeSubscriptionHandler creates a new RevokeSubscriptionHandler.
func NewRevokeSubscriptionHandler(op actionProcessor) *RevokeSubscriptionHandler {
	return &RevokeSubscriptionHandler{Operator: op}
}

// Register registers the revoke subscription endpoint with the Huma API.
func (h *RevokeSubscriptionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "revoke-subscription",
		Method:      http.MethodPost,
		Path:        "/v1/subscription/revoke",
		Summary:     "Revoke subscription",
		Description: "Clears the subscribed flag, keeping the window timestamps for history.",
		Tags:        []string{"Subscriptions"},
	}, h.handle)
}

func (h *RevokeSubscriptionHandler) handle(ctx context.Context, input *RevokeSubscriptionInput) (*RevokeSubscriptionOutput, error) {
	action := &actions.RevokeSubscription{PlatformID: input.Body.PlatformID}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	return &RevokeSubscriptionOutput{Status: http.StatusOK}, nil
}
