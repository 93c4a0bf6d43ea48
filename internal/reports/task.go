package reports

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// State is a task's lifecycle position. Transitions only ever move forward:
// pending -> running -> succeeded or failed.
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Terminal reports whether the state is an end state.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Failure is the structured payload of a failed task: a machine-readable kind
// plus a human message.
type Failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Task is one asynchronous report job. Result carries the serialized table on
// success; Failure is set on failure.
type Task struct {
	ID        uuid.UUID
	State     State
	Result    string
	Failure   *Failure
	CreatedAt time.Time
	UpdatedAt time.Time
}
