package report

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/reports"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// waitTimeout bounds the optional synchronous wait so a slow report cannot
// hold the request open indefinitely.
const waitTimeout = 30 * time.Second

// ReportFilter is one (field, operator, value) predicate of a report query.
type ReportFilter struct {
	Field    string `json:"field" required:"true" doc:"Column to filter on"`
	Operator string `json:"operator" required:"true" doc:"Comparison operator: =, !=, >, >=, <, <="`
	Value    string `json:"value" required:"true" doc:"Comparison value"`
}

// GenerateReportBody is the request body for generating a report. Exactly one
// of startDate or daysBefore must be supplied.
type GenerateReportBody struct {
	PlatformID string         `json:"platformID" required:"true" doc:"External platform user identifier"`
	StartDate  string         `json:"startDate,omitempty" format:"date" doc:"Window start, YYYY-MM-DD"`
	EndDate    string         `json:"endDate,omitempty" format:"date" doc:"Window end, YYYY-MM-DD, defaults to startDate"`
	DaysBefore *int           `json:"daysBefore,omitempty" doc:"Window of the last N days ending today"`
	Filters    []ReportFilter `json:"filters,omitempty" doc:"AND-composed predicates"`
	Aggregate  string         `json:"aggregate,omitempty" enum:"day,week,month,year" doc:"Aggregation mode, omit for raw rows"`
	Detailed   bool           `json:"detailed,omitempty" doc:"Include description, category and method columns; ignored when aggregating"`
	Wait       bool           `json:"wait,omitempty" doc:"Block until the task finishes and return the result inline"`
}

// GenerateReportInput is the Huma input for generating a report.
type GenerateReportInput struct {
	Body GenerateReportBody
}

// GenerateReportResponseBody is the response body for generating a report.
// Result and Failure are only set when the caller asked to wait.
type GenerateReportResponseBody struct {
	TaskID  string           `json:"taskID" doc:"Task identifier to poll"`
	State   string           `json:"state" doc:"Task state at response time"`
	Result  string           `json:"result,omitempty" doc:"CSV result, present on a waited success"`
	Failure *reports.Failure `json:"failure,omitempty" doc:"Failure payload, present on a waited failure"`
}

// GenerateReportOutput is the Huma output for generating a report.
type GenerateReportOutput struct {
	Body GenerateReportResponseBody
}

// GenerateReportHandler handles POST /v1/report/generate.
type GenerateReportHandler struct {
	Pipeline *reports.Pipeline
	Store    *reports.TaskStore
}

// NewGenerateReportHandler creates a new GenerateReportHandler.
func NewGenerateReportHandler(pipeline *reports.Pipeline, store *reports.TaskStore) *GenerateReportHandler {
	return &GenerateReportHandler{Pipeline: pipeline, Store: store}
}

// Register registers the generate report endpoint with the Huma API.
func (h *GenerateReportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-report",
		Method:      http.MethodPost,
		Path:        "/v1/report/generate",
		Summary:     "Generate report",
		Description: "Enqueues an extract task and returns its id immediately, or waits when asked to.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *GenerateReportHandler) buildRequest(body *GenerateReportBody) (*reports.ExtractRequest, error) {
	request := &reports.ExtractRequest{
		PlatformID: body.PlatformID,
		DaysBefore: body.DaysBefore,
		Aggregate:  body.Aggregate,
		Detailed:   body.Detailed,
	}

	if body.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
		}
		request.StartDate = &parsed
	}
	if body.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", body.EndDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
		}
		request.EndDate = &parsed
	}

	for _, filter := range body.Filters {
		converted := transaction.FieldFilter{
			Field:    filter.Field,
			Operator: filter.Operator,
			Value:    filter.Value,
		}
		if err := transaction.ValidateFilter(converted); err != nil {
			return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
		}
		request.Filters = append(request.Filters, converted)
	}
	return request, nil
}

func (h *GenerateReportHandler) handle(ctx context.Context, input *GenerateReportInput) (*GenerateReportOutput, error) {
	request, err := h.buildRequest(&input.Body)
	if err != nil {
		return nil, err
	}

	taskID, err := h.Pipeline.Enqueue(*request)
	if err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	if !input.Body.Wait {
		return &GenerateReportOutput{
			Body: GenerateReportResponseBody{
				TaskID: taskID.String(),
				State:  string(reports.StatePending),
			},
		}, nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()
	task, err := reports.Poll(waitCtx, h.Store, taskID, reports.PollConfig{})
	if err != nil {
		return nil, huma.NewError(http.StatusGatewayTimeout, "timed out waiting for report", err)
	}

	return &GenerateReportOutput{
		Body: GenerateReportResponseBody{
			TaskID:  task.ID.String(),
			State:   string(task.State),
			Result:  task.Result,
			Failure: task.Failure,
		},
	}, nil
}
