package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-user-hub/internal/config"
	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/sethvargo/go-retry"
)

const (
	defaultQueueSize   = 64
	defaultConcurrency = 4
	defaultMaxRetries  = 3

	// defaultRetryBase is the first retry delay; it doubles on every
	// subsequent attempt.
	defaultRetryBase = 60 * time.Second
)

var (
	// ErrQueueFull is returned by Enqueue when the task channel has no
	// free capacity.
	ErrQueueFull = errors.New("task queue is full")

	// ErrQueueClosed is returned by Enqueue after the pool has stopped.
	ErrQueueClosed = errors.New("task queue is closed")
)

// Task is one unit of background work. Run is retried on failure under
// the pool's backoff policy.
type Task struct {
	// Name identifies the task in log output.
	Name string

	// Run does the work. A non-nil error marks the attempt failed and
	// schedules a retry until the policy is exhausted.
	Run func(ctx context.Context) error
}

// Pool is a fixed-size worker pool draining a bounded task channel.
// It implements [Worker].
type Pool struct {
	tasks       chan Task
	concurrency int
	maxRetries  uint64

	// retryBase is the first retry delay. Tests shrink it.
	retryBase time.Duration

	// classifier marks failed attempts as permanent so the backoff policy
	// is not exhausted on work that can never succeed. Nil retries
	// everything.
	classifier store.ErrorClassificator

	logger *logger.Logger

	mu      sync.Mutex
	started bool
	closed  bool
	wg      sync.WaitGroup
}

// NewPool sizes a pool from configuration, falling back to the package
// defaults for unset values. classifier may be nil, in which case every
// failed attempt is retried until the policy is exhausted.
func NewPool(cfg config.Workers, classifier store.ErrorClassificator, log *logger.Logger) *Pool {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &Pool{
		tasks:       make(chan Task, queueSize),
		concurrency: concurrency,
		maxRetries:  uint64(maxRetries),
		retryBase:   defaultRetryBase,
		classifier:  classifier,
		logger:      log.WithComponent("workers"),
	}
}

// Run launches the pool's goroutines. Subsequent calls are no-ops.
func (p *Pool) Run(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true

	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}

	p.logger.Info().
		Int("concurrency", p.concurrency).
		Int("queue_size", cap(p.tasks)).
		Msg("worker pool started")
}

// Enqueue offers a task to the pool without blocking. The mutex is held
// across the send so a concurrent Stop cannot close the channel under a
// sender.
func (p *Pool) Enqueue(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrQueueClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		p.logger.Error().Str("task", task.Name).Msg("task rejected: queue is full")
		return ErrQueueFull
	}
}

// Stop closes the queue and waits until the already accepted tasks have
// been processed.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info().Msg("worker pool stopped")
}

// worker drains the task channel until it is closed or ctx is cancelled.
func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			p.execute(ctx, task)
		}
	}
}

// execute runs one task under the retry policy: exponential backoff
// starting at retryBase and doubling, capped at maxRetries retries.
// Attempts the classifier marks non-retryable abort the policy immediately.
func (p *Pool) execute(ctx context.Context, task Task) {
	log := p.logger
	attempt := 0

	backoff := retry.WithMaxRetries(p.maxRetries, retry.NewExponential(p.retryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		if err := task.Run(ctx); err != nil {
			log.Err(err).Str("task", task.Name).Int("attempt", attempt).Msg("task attempt failed")
			if p.classifier != nil && p.classifier.Classify(err) == store.NonRetryable {
				// returned unwrapped: retry.Do treats it as terminal
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("task", task.Name).Int("attempts", attempt).Msg("task failed permanently")
		return
	}

	log.Info().Str("task", task.Name).Int("attempts", attempt).Msg("task completed")
}
