package reports

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carteira-app/finance-server/internal/errdefs"
)

func TestPipeline_SuccessfulTask(t *testing.T) {
	store, clients, transactions := fakeGeneratorStorage()
	addClient(clients, "tg-1")
	transactions.rows = append(transactions.rows, extractRow("2025-06-01", "10.00"))

	taskStore := NewTaskStore()
	pipeline := NewPipeline(NewGenerator(store), taskStore, 1, 4)
	pipeline.Start()
	defer pipeline.Stop()

	taskID, err := pipeline.Enqueue(ExtractRequest{
		PlatformID: "tg-1",
		StartDate:  datePtr("2025-06-01"),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	task, err := Poll(ctx, taskStore, taskID, PollConfig{InitialInterval: time.Millisecond})

	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, task.State)
	assert.Contains(t, task.Result, "transaction_timestamp")
	assert.Nil(t, task.Failure)
}

func TestPipeline_FailedTaskCarriesKind(t *testing.T) {
	store, _, _ := fakeGeneratorStorage()

	taskStore := NewTaskStore()
	pipeline := NewPipeline(NewGenerator(store), taskStore, 1, 4)
	pipeline.Start()
	defer pipeline.Stop()

	taskID, err := pipeline.Enqueue(ExtractRequest{
		PlatformID: "ghost",
		StartDate:  datePtr("2025-06-01"),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	task, err := Poll(ctx, taskStore, taskID, PollConfig{InitialInterval: time.Millisecond})

	require.NoError(t, err)
	assert.Equal(t, StateFailed, task.State)
	require.NotNil(t, task.Failure)
	assert.Equal(t, string(errdefs.KindClientNotExists), task.Failure.Kind)
	assert.Empty(t, task.Result)
}

func TestPipeline_EmptyResultFailure(t *testing.T) {
	store, clients, _ := fakeGeneratorStorage()
	addClient(clients, "tg-1")

	taskStore := NewTaskStore()
	pipeline := NewPipeline(NewGenerator(store), taskStore, 1, 4)
	pipeline.Start()
	defer pipeline.Stop()

	taskID, err := pipeline.Enqueue(ExtractRequest{
		PlatformID: "tg-1",
		StartDate:  datePtr("2025-06-01"),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	task, err := Poll(ctx, taskStore, taskID, PollConfig{InitialInterval: time.Millisecond})

	require.NoError(t, err)
	require.NotNil(t, task.Failure)
	assert.Equal(t, string(errdefs.KindEmptyResult), task.Failure.Kind)
	assert.Equal(t, "no data in period", task.Failure.Message)
}

func TestPipeline_FullQueueRefused(t *testing.T) {
	store, clients, transactions := fakeGeneratorStorage()
	addClient(clients, "tg-1")
	transactions.rows = append(transactions.rows, extractRow("2025-06-01", "10.00"))
	transactions.block = make(chan struct{})

	taskStore := NewTaskStore()
	pipeline := NewPipeline(NewGenerator(store), taskStore, 1, 1)
	pipeline.Start()

	request := ExtractRequest{PlatformID: "tg-1", StartDate: datePtr("2025-06-01")}

	// First job occupies the only worker, second fills the queue.
	first, err := pipeline.Enqueue(request)
	require.NoError(t, err)

	// Give the worker a moment to pick up the first job.
	require.Eventually(t, func() bool {
		task, ok := taskStore.Get(first)
		return ok && task.State == StateRunning
	}, 5*time.Second, time.Millisecond)

	_, err = pipeline.Enqueue(request)
	require.NoError(t, err)

	_, err = pipeline.Enqueue(request)
	assert.True(t, errdefs.IsKind(err, errdefs.KindStore))

	// The refused request leaves no record behind; only the running and the
	// queued task remain.
	taskStore.mu.RLock()
	remaining := len(taskStore.tasks)
	taskStore.mu.RUnlock()
	assert.Equal(t, 2, remaining)

	close(transactions.block)
	pipeline.Stop()
}

func TestTaskStore_GetReturnsCopy(t *testing.T) {
	store := NewTaskStore()
	taskID, err := store.Create()
	require.NoError(t, err)

	task, ok := store.Get(taskID)
	require.True(t, ok)
	assert.Equal(t, StatePending, task.State)

	// Mutating the copy must not leak back into the store.
	task.State = StateSucceeded
	fresh, _ := store.Get(taskID)
	assert.Equal(t, StatePending, fresh.State)
}

func TestTaskStore_UnknownID(t *testing.T) {
	store := NewTaskStore()

	_, ok := store.Get(uuid.Must(uuid.NewV4()))
	assert.False(t, ok)
}
