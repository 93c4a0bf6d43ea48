package limit

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage/limit"
)

// CheckAllLimitsBody is the request body for checking every configured limit.
// The window defaults to the current calendar month.
type CheckAllLimitsBody struct {
	PlatformID string `json:"platformID" required:"true" doc:"External platform user identifier"`
	StartDate  string `json:"startDate,omitempty" format:"date" doc:"Window start, YYYY-MM-DD"`
	EndDate    string `json:"endDate,omitempty" format:"date" doc:"Window end (exclusive), YYYY-MM-DD"`
}

// CheckAllLimitsInput is the Huma input for checking every configured limit.
type CheckAllLimitsInput struct {
	Body CheckAllLimitsBody
}

// CategoryUsage is the API response model for one configured limit.
type CategoryUsage struct {
	CategoryID   int16  `json:"categoryID" doc:"Payment category"`
	CategoryName string `json:"categoryName" doc:"Payment category name"`
	LimitValue   string `json:"limitValue" doc:"Configured limit"`
	TotalSpent   string `json:"totalSpent" doc:"Expense total inside the window, 0 with no spend"`
}

// CheckAllLimitsResponseBody is the response body for checking every limit.
type CheckAllLimitsResponseBody struct {
	Limits []CategoryUsage `json:"limits" doc:"One entry per configured limit, including zero-spend categories"`
}

// CheckAllLimitsOutput is the Huma output for checking every limit.
type CheckAllLimitsOutput struct {
	Body CheckAllLimitsResponseBody
}

// allLimitsChecker is the interface for the check-all aggregation.
type allLimitsChecker interface {
	CheckAllLimits(ctx context.Context, clientID uuid.UUID, start, end *time.Time) ([]*limit.CategoryUsage, error)
}

// CheckAllLimitsHandler handles POST /v1/limit/check-all.
type CheckAllLimitsHandler struct {
	ClientService clientResolver
	LimitService  allLimitsChecker
}

// NewCheckAllLimitsHandler creates a new CheckAllLimitsHandler.
func NewCheckAllLimitsHandler(clients clientResolver, limits allLimitsChecker) *CheckAllLimitsHandler {
	return &CheckAllLimitsHandler{ClientService: clients, LimitService: limits}
}

// Register registers the check all limits endpoint with the Huma API.
func (h *CheckAllLimitsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "check-all-limits",
		Method:      http.MethodPost,
		Path:        "/v1/limit/check-all",
		Summary:     "Check all limits",
		Description: "Returns every configured limit with its spend inside the window.",
		Tags:        []string{"Limits"},
	}, h.handle)
}

func parseDate(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid "+name, err)
	}
	return &parsed, nil
}

func (h *CheckAllLimitsHandler) handle(ctx context.Context, input *CheckAllLimitsInput) (*CheckAllLimitsOutput, error) {
	start, err := parseDate(input.Body.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := parseDate(input.Body.EndDate, "endDate")
	if err != nil {
		return nil, err
	}

	row, err := h.ClientService.Info(ctx, input.Body.PlatformID)
	if err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	usages, err := h.LimitService.CheckAllLimits(ctx, row.ID, start, end)
	if err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	body := CheckAllLimitsResponseBody{Limits: make([]CategoryUsage, len(usages))}
	for i, usage := range usages {
		body.Limits[i] = CategoryUsage{
			CategoryID:   usage.CategoryID,
			CategoryName: usage.CategoryName,
			LimitValue:   usage.LimitValue.String(),
			TotalSpent:   usage.TotalSpent.String(),
		}
	}
	return &CheckAllLimitsOutput{Body: body}, nil
}
