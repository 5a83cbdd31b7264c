// Package workers provides the in-process background task queue: a
// bounded channel of tasks drained by a pool of goroutines, each task
// executed under an exponential-backoff retry policy.
package workers

import "context"

// Worker is the interface implemented by any background worker.
// Run starts the worker's execution and returns once its goroutines are
// launched; the worker stops when ctx is cancelled or the worker is
// stopped explicitly.
type Worker interface {
	Run(ctx context.Context)
}

// Workers aggregates several workers so the application can start them in
// a unified way.
type Workers struct {
	workers []Worker
}

// NewWorkers bundles the given workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every registered worker.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
