package task

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carteira-app/finance-server/internal/reports"
)

// GetTaskInput is the Huma input for polling a task.
type GetTaskInput struct {
	ID string `path:"id" doc:"Task UUID"`
}

// GetTaskResponseBody is the response body for polling a task. Result is the
// CSV table on success; Failure carries the structured payload on failure.
type GetTaskResponseBody struct {
	TaskID    string           `json:"taskID" doc:"Task UUID"`
	State     string           `json:"state" doc:"pending, running, succeeded or failed"`
	Result    string           `json:"result,omitempty" doc:"CSV result, present when succeeded"`
	Failure   *reports.Failure `json:"failure,omitempty" doc:"Failure payload, present when failed"`
	UpdatedAt string           `json:"updatedAt" doc:"RFC3339 time of the last state change"`
}

// GetTaskOutput is the Huma output for polling a task.
type GetTaskOutput struct {
	Body GetTaskResponseBody
}

// GetTaskHandler handles GET /v1/task/{id}.
type GetTaskHandler struct {
	Store *reports.TaskStore
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(store *reports.TaskStore) *GetTaskHandler {
	return &GetTaskHandler{Store: store}
}

// Register registers the get task endpoint with the Huma API.
func (h *GetTaskHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/v1/task/{id}",
		Summary:     "Get task",
		Description: "Returns the task's state, its result on success, or its failure payload.",
		Tags:        []string{"Tasks"},
	}, h.handle)
}

func (h *GetTaskHandler) handle(_ context.Context, input *GetTaskInput) (*GetTaskOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid task id", err)
	}

	task, ok := h.Store.Get(id)
	if !ok {
		return nil, huma.NewError(http.StatusNotFound, "task not found")
	}

	return &GetTaskOutput{
		Body: GetTaskResponseBody{
			TaskID:    task.ID.String(),
			State:     string(task.State),
			Result:    task.Result,
			Failure:   task.Failure,
			UpdatedAt: task.UpdatedAt.Format(time.RFC3339),
		},
	}, nil
}
