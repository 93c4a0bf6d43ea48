package reports

import (
	"context"
	"sync"

	"github.com/gofrs/uuid/v5"
	log "github.com/sirupsen/logrus"

	"github.com/carteira-app/finance-server/internal/errdefs"
)

// Pipeline runs report jobs on a worker pool, decoupled from the request
// path. Callers enqueue and get a task id back immediately, then poll the
// TaskStore for the terminal state.
type Pipeline struct {
	generator  *Generator
	store      *TaskStore
	queue      chan job
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

type job struct {
	taskID  uuid.UUID
	request ExtractRequest
}

func NewPipeline(generator *Generator, store *TaskStore, numWorkers, queueSize int) *Pipeline {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pipeline{
		generator:  generator,
		store:      store,
		queue:      make(chan job, queueSize),
		numWorkers: numWorkers,
	}
}

func (p *Pipeline) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run()
		}()
	}
}

func (p *Pipeline) Stop() {
	p.stopOnce.Do(func() {
		close(p.queue)
		p.wg.Wait()
	})
}

// Enqueue registers a pending task for the request and hands it to the pool.
// A full queue is refused instead of blocking the request path.
func (p *Pipeline) Enqueue(request ExtractRequest) (uuid.UUID, error) {
	taskID, err := p.store.Create()
	if err != nil {
		return uuid.Nil, err
	}

	select {
	case p.queue <- job{taskID: taskID, request: request}:
		return taskID, nil
	default:
		// No worker will ever see this task; drop it instead of leaving an
		// unreachable failed record behind.
		p.store.remove(taskID)
		return uuid.Nil, &errdefs.Error{Kind: errdefs.KindStore, Message: "report queue is full"}
	}
}

// run drains the queue. A job failure lands in the task's failure payload,
// never on this goroutine's call stack; tasks have no cancellation, so each
// one runs to completion on a background context.
func (p *Pipeline) run() {
	for item := range p.queue {
		p.store.markRunning(item.taskID)

		result, err := p.generator.Generate(context.Background(), &item.request)
		if err != nil {
			log.WithFields(log.Fields{
				"task_id": item.taskID,
				"kind":    errdefs.KindOf(err),
				"error":   err.Error(),
			}).Error("Pipeline.Task.Failed")
			p.store.markFailed(item.taskID, Failure{
				Kind:    string(errdefs.KindOf(err)),
				Message: errdefs.PublicMessage(err),
			})
			continue
		}

		p.store.markSucceeded(item.taskID, result)
	}
}
