package limit

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/service"
	"github.com/carteira-app/finance-server/internal/storage/client"
)

// CheckLimitBody is the request body for checking a category limit.
type CheckLimitBody struct {
	PlatformID string `json:"platformID" required:"true" doc:"External platform user identifier"`
	CategoryID int16  `json:"categoryID" required:"true" doc:"Payment category to check"`
}

// CheckLimitInput is the Huma input for checking a category limit.
type CheckLimitInput struct {
	Body CheckLimitBody
}

// CheckLimitResponseBody is the response body for checking a category limit.
type CheckLimitResponseBody struct {
	CategoryID   int16  `json:"categoryID" doc:"Payment category checked"`
	CategoryName string `json:"categoryName" doc:"Payment category name"`
	TotalSpent   string `json:"totalSpent" doc:"Current month's expense total for the category"`
	LimitValue   string `json:"limitValue" doc:"Configured limit, 0 when none is configured"`
	Exceeded     bool   `json:"exceeded" doc:"Whether spend reached or passed the limit"`
}

// CheckLimitOutput is the Huma output for checking a category limit.
type CheckLimitOutput struct {
	Body CheckLimitResponseBody
}

// clientResolver is the interface for resolving a platform id to a client row.
type clientResolver interface {
	Info(ctx context.Context, platformID string) (*client.Client, error)
}

// limitChecker is the interface for single-category limit checks.
type limitChecker interface {
	CheckLimit(ctx context.Context, clientID uuid.UUID, categoryID int16) (*service.LimitStatus, error)
}

// CheckLimitHandler handles POST /v1/limit/check.
type CheckLimitHandler struct {
	ClientService clientResolver
	LimitService  limitChecker
}

// NewCheckLimitHandler creates a new CheckLimitHandler.
func NewCheckLimitHandler(clients clientResolver, limits limitChecker) *CheckLimitHandler {
	return &CheckLimitHandler{ClientService: clients, LimitService: limits}
}

// Register registers the check limit endpoint with the Huma API.
func (h *CheckLimitHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "check-limit",
		Method:      http.MethodPost,
		Path:        "/v1/limit/check",
		Summary:     "Check limit",
		Description: "Compares the current month's expense spend for a category against its configured limit.",
		Tags:        []string{"Limits"},
	}, h.handle)
}

func (h *CheckLimitHandler) handle(ctx context.Context, input *CheckLimitInput) (*CheckLimitOutput, error) {
	row, err := h.ClientService.Info(ctx, input.Body.PlatformID)
	if err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	status, err := h.LimitService.CheckLimit(ctx, row.ID, input.Body.CategoryID)
	if err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	return &CheckLimitOutput{
		Body: CheckLimitResponseBody{
			CategoryID:   status.CategoryID,
			CategoryName: status.CategoryName,
			TotalSpent:   status.TotalSpent.String(),
			LimitValue:   status.LimitValue.String(),
			Exceeded:     status.Exceeded,
		},
	}, nil
}
