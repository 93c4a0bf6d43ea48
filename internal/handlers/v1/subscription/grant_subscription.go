package subscription

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/operator/actions"
)

// actionProcessor runs an action through the operator queue, blocking until
// it commits or rolls back.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// GrantSubscriptionBody is the request body for granting a subscription.
type GrantSubscriptionBody struct {
	PlatformID string `json:"platformID" required:"true" doc:"External platform user identifier"`
	Months     int    `json:"months" required:"true" minimum:"1" doc:"Subscription length in calendar months"`
}

// GrantSubscriptionInput is the Huma input for granting a subscription.
type GrantSubscriptionInput struct {
	Body GrantSubscriptionBody
}

// GrantSubscriptionResponseBody is the response body for granting a subscription.
type GrantSubscriptionResponseBody struct {
	Start string `json:"start" doc:"RFC3339 subscription start"`
	End   string `json:"end" doc:"RFC3339 subscription end"`
}

// GrantSubscriptionOutput is the Huma output for granting a subscription.
type GrantSubscriptionOutput struct {
	Body GrantSubscriptionResponseBody
}

// GrantSubscriptionHandler handles POST /v1/subscription/grant.
type GrantSubscriptionHandler struct {
	Operator actionProcessor
}

// NewGrantSubscriptionHandler creates a new GrantSubscriptionHandler.
func NewGrantSubscriptionHandler(op actionProcessor) *GrantSubscriptionHandler {
	return &GrantSubscriptionHandler{Operator: op}
}

// Register registers the grant subscription endpoint with the Huma API.
func (h *GrantSubscriptionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "grant-subscription",
		Method:      http.MethodPost,
		Path:        "/v1/subscription/grant",
		Summary:     "Grant subscription",
		Description: "Activates the client's subscription for the given number of months. Re-granting resets the start to now.",
		Tags:        []string{"Subscriptions"},
	}, h.handle)
}

func (h *GrantSubscriptionHandler) handle(ctx context.Context, input *GrantSubscriptionInput) (*GrantSubscriptionOutput, error) {
	action := &actions.GrantSubscription{
		PlatformID: input.Body.PlatformID,
		Months:     input.Body.Months,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	return &GrantSubscriptionOutput{
		Body: GrantSubscriptionResponseBody{
			Start: action.ResultStart.Format(time.RFC3339),
			End:   action.ResultEnd.Format(time.RFC3339),
		},
	}, nil
}
