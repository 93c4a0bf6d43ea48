package reports

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carteira-app/finance-server/internal/errdefs"
)

// PollConfig tunes the backoff of a polling wait. Zero values fall back to
// the defaults.
type PollConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

const (
	defaultPollInitial = 100 * time.Millisecond
	defaultPollMax     = 2 * time.Second
)

// Poll waits for the task to reach a terminal state, sleeping with
// exponential backoff between status reads. The context bounds the whole
// wait; there is no unbounded retry loop.
func Poll(ctx context.Context, store *TaskStore, taskID uuid.UUID, cfg PollConfig) (*Task, error) {
	interval := cfg.InitialInterval
	if interval <= 0 {
		interval = defaultPollInitial
	}
	maxInterval := cfg.MaxInterval
	if maxInterval <= 0 {
		maxInterval = defaultPollMax
	}

	for {
		task, ok := store.Get(taskID)
		if !ok {
			return nil, errdefs.Validation("unknown task %s", taskID)
		}
		if task.State.Terminal() {
			return task, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}

		interval *= 2
		if interval > maxInterval {
			interval = maxInterval
		}
	}
}
