// Package jobs is the fire-and-forget async dispatcher. Callers
// schedule work and move on; there is no ordering guarantee relative
// to the HTTP response and no cancellation path back to the caller.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/boardkit/boardkit/internal/domain"
	"github.com/boardkit/boardkit/internal/logger"
)

const KindTouchActivity = "activity.touch"

// TouchActivity is the payload for a last-seen upsert keyed by
// (user id, board id).
type TouchActivity struct {
	UserId  domain.UserId
	BoardId domain.BoardId
}

type Job struct {
	Id         uuid.UUID
	Kind       string
	Payload    any
	EnqueuedAt time.Time
}

type HandlerFunc func(ctx context.Context, payload any) error

type Dispatcher struct {
	queue    chan Job
	handlers map[string]HandlerFunc
	mu       sync.RWMutex
	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

func NewDispatcher(queueSize int) *Dispatcher {
	return &Dispatcher{
		queue:    make(chan Job, queueSize),
		handlers: make(map[string]HandlerFunc),
		stop:     make(chan struct{}),
	}
}

// Register binds a handler to a job kind. Must happen before Start.
func (d *Dispatcher) Register(kind string, fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = fn
}

// Schedule enqueues a job without blocking. When the queue is full the
// job is dropped and logged; activity updates are best-effort.
func (d *Dispatcher) Schedule(kind string, payload any) {
	job := Job{Id: uuid.New(), Kind: kind, Payload: payload, EnqueuedAt: time.Now()}
	select {
	case d.queue <- job:
	default:
		logger.Log.Warn("job queue full, dropping job", "kind", kind, "job_id", job.Id)
	}
}

// Start launches the worker loop. Jobs run one at a time; failures are
// logged and never retried.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case <-d.stop:
				return
			case <-ctx.Done():
				return
			case job := <-d.queue:
				d.run(ctx, job)
			}
		}
	}()
}

func (d *Dispatcher) run(ctx context.Context, job Job) {
	d.mu.RLock()
	fn, ok := d.handlers[job.Kind]
	d.mu.RUnlock()
	if !ok {
		logger.Log.Error("no handler registered for job kind", "kind", job.Kind, "job_id", job.Id)
		return
	}
	if err := fn(ctx, job.Payload); err != nil {
		logger.Log.Error("job failed", "kind", job.Kind, "job_id", job.Id, "error", err)
	}
}

// Stop shuts the worker down after the current job finishes. Queued
// jobs that have not started are discarded.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
	d.wg.Wait()
}
