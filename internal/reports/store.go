package reports

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
)

// TaskStore keeps task records in memory. Callers always get copies, so a
// polling read never races a worker's state transition.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*Task
	now   func() time.Time
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[uuid.UUID]*Task),
		now:   time.Now,
	}
}

// Create registers a new pending task and returns its id.
func (s *TaskStore) Create() (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	now := s.now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[id] = &Task{
		ID:        id,
		State:     StatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id, nil
}

// Get returns a copy of the task, or false when the id is unknown.
func (s *TaskStore) Get(id uuid.UUID) (*Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	copied := *task
	if task.Failure != nil {
		failure := *task.Failure
		copied.Failure = &failure
	}
	return &copied, true
}

// remove drops a task that never made it onto the queue, so refused requests
// do not accumulate unreachable records.
func (s *TaskStore) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
}

func (s *TaskStore) markRunning(id uuid.UUID) {
	s.transition(id, func(task *Task) {
		task.State = StateRunning
	})
}

func (s *TaskStore) markSucceeded(id uuid.UUID, result string) {
	s.transition(id, func(task *Task) {
		task.State = StateSucceeded
		task.Result = result
	})
}

func (s *TaskStore) markFailed(id uuid.UUID, failure Failure) {
	s.transition(id, func(task *Task) {
		task.State = StateFailed
		task.Failure = &failure
	})
}

func (s *TaskStore) transition(id uuid.UUID, mutate func(*Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return
	}
	mutate(task)
	task.UpdatedAt = s.now().UTC()
}
