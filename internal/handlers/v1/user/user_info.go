package user

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage/client"
)

// UserInfoInput is the Huma input for fetching a user profile.
type UserInfoInput struct {
	PlatformID string `query:"platformID" required:"true" doc:"External platform user identifier"`
}

// UserInfoResponseBody is the response body for fetching a user profile.
type UserInfoResponseBody struct {
	ClientID          string `json:"clientID" doc:"Internal client UUID"`
	PlatformID        string `json:"platformID" doc:"External platform user identifier"`
	PlatformName      string `json:"platformName" doc:"Platform the identifier belongs to"`
	Name              string `json:"name" doc:"Display name"`
	Phone             string `json:"phone" doc:"Phone number"`
	Subscribed        bool   `json:"subscribed" doc:"Whether the subscription flag is on"`
	SubscriptionStart string `json:"subscriptionStart,omitempty" doc:"RFC3339 subscription start"`
	SubscriptionEnd   string `json:"subscriptionEnd,omitempty" doc:"RFC3339 subscription end"`
}

// UserInfoOutput is the Huma output for fetching a user profile.
type UserInfoOutput struct {
	Body UserInfoResponseBody
}

// infoFetcher is the interface for fetching a client profile.
type infoFetcher interface {
	Info(ctx context.Context, platformID string) (*client.Client, error)
}

// UserInfoHandler handles GET /v1/user/info.
type UserInfoHandler struct {
	ClientService infoFetcher
}

// NewUserInfoHandler creates a new UserInfoHandler.
func NewUserInfoHandler(svc infoFetcher) *UserInfoHandler {
	return &UserInfoHandler{ClientService: svc}
}

// Register registers the user info endpoint with the Huma API.
func (h *UserInfoHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "user-info",
		Method:      http.MethodGet,
		Path:        "/v1/user/info",
		Summary:     "Get user info",
		Description: "Returns the client's profile and subscription state.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *UserInfoHandler) handle(ctx context.Context, input *UserInfoInput) (*UserInfoOutput, error) {
	row, err := h.ClientService.Info(ctx, input.PlatformID)
	if err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	body := UserInfoResponseBody{
		ClientID:     row.ID.String(),
		PlatformID:   row.PlatformID,
		PlatformName: row.PlatformName,
		Name:         row.Name,
		Phone:        row.Phone,
		Subscribed:   row.Subscribed,
	}
	if row.SubsStart != nil {
		body.SubscriptionStart = row.SubsStart.Format(time.RFC3339)
	}
	if row.SubsEnd != nil {
		body.SubscriptionEnd = row.SubsEnd.Format(time.RFC3339)
	}
	return &UserInfoOutput{Body: body}, nil
}
