package user

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carteira-app/finance-server/internal/cache"
	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/operator/actions"
)

// actionProcessor runs an action through the operator queue, blocking until
// it commits or rolls back.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// existsCacheTTL bounds how long a cached existence answer is trusted.
const existsCacheTTL = 5 * time.Minute

// UpsertUserBody is the request body for upserting a user.
type UpsertUserBody struct {
	PlatformID   string `json:"platformID" required:"true" doc:"External platform user identifier"`
	PlatformName string `json:"platformName" required:"true" doc:"Platform the identifier belongs to"`
	Name         string `json:"name" doc:"Display name"`
	Phone        string `json:"phone" doc:"Phone number"`
}

// UpsertUserInput is the Huma input for upserting a user.
type UpsertUserInput struct {
	Body UpsertUserBody
}

// UpsertUserResponseBody is the response body for upserting a user.
type UpsertUserResponseBody struct {
	ClientID string `json:"clientID" doc:"Internal client UUID"`
}

// UpsertUserOutput is the Huma output for upserting a user.
type UpsertUserOutput struct {
	Body UpsertUserResponseBody
}

// UpsertUserHandler handles POST /v1/user.
type UpsertUserHandler struct {
	Operator actionProcessor
	Cache    cache.Cache
}

// NewUpsertUserHandler creates a new UpsertUserHandler.
func NewUpsertUserHandler(op actionProcessor, c cache.Cache) *UpsertUserHandler {
	return &UpsertUserHandler{Operator: op, Cache: c}
}

// Register registers the upsert user endpoint with the Huma API.
func (h *UpsertUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "upsert-user",
		Method:      http.MethodPost,
		Path:        "/v1/user",
		Summary:     "Upsert user",
		Description: "Creates the client on first contact or refreshes its profile.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *UpsertUserHandler) handle(ctx context.Context, input *UpsertUserInput) (*UpsertUserOutput, error) {
	action := &actions.UpsertClient{
		PlatformID:   input.Body.PlatformID,
		PlatformName: input.Body.PlatformName,
		Name:         input.Body.Name,
		Phone:        input.Body.Phone,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	// The row is committed now, so the cached answer can flip to true.
	_ = h.Cache.Set(ctx, input.Body.PlatformID, "true", existsCacheTTL)

	return &UpsertUserOutput{
		Body: UpsertUserResponseBody{ClientID: action.ResultClientID.String()},
	}, nil
}
