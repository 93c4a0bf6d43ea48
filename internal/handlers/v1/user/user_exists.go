package user

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carteira-app/finance-server/internal/cache"
	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/logging"
)

// UserExistsInput is the Huma input for the existence check.
type UserExistsInput struct {
	PlatformID string `query:"platformID" required:"true" doc:"External platform user identifier"`
}

// UserExistsResponseBody is the response body for the existence check.
type UserExistsResponseBody struct {
	Exists bool `json:"exists" doc:"Whether a client row exists for the platform identifier"`
}

// UserExistsOutput is the Huma output for the existence check.
type UserExistsOutput struct {
	Body UserExistsResponseBody
}

// existsChecker is the interface for checking client existence.
type existsChecker interface {
	Exists(ctx context.Context, platformID string) (bool, error)
}

// UserExistsHandler handles GET /v1/user/exists. The cache sits in front of
// the store here, in the calling layer; the store stays authoritative.
type UserExistsHandler struct {
	ClientService existsChecker
	Cache         cache.Cache
}

// NewUserExistsHandler creates a new UserExistsHandler.
func NewUserExistsHandler(svc existsChecker, c cache.Cache) *UserExistsHandler {
	return &UserExistsHandler{ClientService: svc, Cache: c}
}

// Register registers the user exists endpoint with the Huma API.
func (h *UserExistsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "user-exists",
		Method:      http.MethodGet,
		Path:        "/v1/user/exists",
		Summary:     "Check user existence",
		Description: "Reports whether a client row exists for the platform identifier.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *UserExistsHandler) handle(ctx context.Context, input *UserExistsInput) (*UserExistsOutput, error) {
	logData := logging.GetLogData(ctx)

	if cached, ok, err := h.Cache.Get(ctx, input.PlatformID); err == nil && ok {
		if logData != nil {
			logData.AddData("cacheHit", true)
		}
		return &UserExistsOutput{
			Body: UserExistsResponseBody{Exists: cached == "true"},
		}, nil
	}

	exists, err := h.ClientService.Exists(ctx, input.PlatformID)
	if err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	_ = h.Cache.Set(ctx, input.PlatformID, strconv.FormatBool(exists), existsCacheTTL)
	return &UserExistsOutput{Body: UserExistsResponseBody{Exists: exists}}, nil
}
