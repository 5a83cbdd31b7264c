package workers

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-hub/internal/config"
	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(cfg config.Workers) *Pool {
	p := NewPool(cfg, store.NewPostgresErrorClassifier(), logger.Nop())
	p.retryBase = time.Millisecond
	return p
}

func TestPool_ExecutesEnqueuedTask(t *testing.T) {
	p := newTestPool(config.Workers{})
	p.Run(context.Background())

	done := make(chan struct{})
	require.NoError(t, p.Enqueue(Task{
		Name: "noop",
		Run: func(ctx context.Context) error {
			close(done)
			return nil
		},
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not executed")
	}

	p.Stop()
}

func TestPool_RetriesUntilSuccess(t *testing.T) {
	p := newTestPool(config.Workers{MaxRetries: 3})
	p.Run(context.Background())

	var attempts atomic.Int32
	done := make(chan struct{})

	require.NoError(t, p.Enqueue(Task{
		Name: "flaky",
		Run: func(ctx context.Context) error {
			if attempts.Add(1) < 3 {
				return errors.New("transient failure")
			}
			close(done)
			return nil
		},
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never succeeded")
	}

	p.Stop()
	assert.Equal(t, int32(3), attempts.Load())
}

func TestPool_GivesUpAfterMaxRetries(t *testing.T) {
	p := newTestPool(config.Workers{MaxRetries: 2})
	p.Run(context.Background())

	var attempts atomic.Int32
	require.NoError(t, p.Enqueue(Task{
		Name: "doomed",
		Run: func(ctx context.Context) error {
			attempts.Add(1)
			return errors.New("permanent failure")
		},
	}))

	p.Stop()

	// initial attempt plus two retries
	assert.Equal(t, int32(3), attempts.Load())
}

func TestPool_AbandonsNonRetryableDatabaseError(t *testing.T) {
	p := newTestPool(config.Workers{MaxRetries: 3})
	p.Run(context.Background())

	var attempts atomic.Int32
	require.NoError(t, p.Enqueue(Task{
		Name: "constraint-violating",
		Run: func(ctx context.Context) error {
			attempts.Add(1)
			return fmt.Errorf("saving record: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
		},
	}))

	p.Stop()

	// a constraint violation can never succeed on retry
	assert.Equal(t, int32(1), attempts.Load())
}

func TestPool_RetriesRetryableDatabaseError(t *testing.T) {
	p := newTestPool(config.Workers{MaxRetries: 3})
	p.Run(context.Background())

	var attempts atomic.Int32
	done := make(chan struct{})

	require.NoError(t, p.Enqueue(Task{
		Name: "deadlocked",
		Run: func(ctx context.Context) error {
			if attempts.Add(1) < 2 {
				return fmt.Errorf("saving record: %w", &pgconn.PgError{Code: pgerrcode.DeadlockDetected})
			}
			close(done)
			return nil
		},
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never succeeded")
	}

	p.Stop()
	assert.Equal(t, int32(2), attempts.Load())
}

func TestPool_NilClassifierRetriesEverything(t *testing.T) {
	p := NewPool(config.Workers{MaxRetries: 2}, nil, logger.Nop())
	p.retryBase = time.Millisecond
	p.Run(context.Background())

	var attempts atomic.Int32
	require.NoError(t, p.Enqueue(Task{
		Name: "unclassified",
		Run: func(ctx context.Context) error {
			attempts.Add(1)
			return fmt.Errorf("saving record: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
		},
	}))

	p.Stop()
	assert.Equal(t, int32(3), attempts.Load())
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	p := newTestPool(config.Workers{})
	p.Run(context.Background())
	p.Stop()

	err := p.Enqueue(Task{Name: "late", Run: func(ctx context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestPool_EnqueueQueueFull(t *testing.T) {
	// capacity one, pool not started: the first task parks in the channel
	p := newTestPool(config.Workers{QueueSize: 1})

	require.NoError(t, p.Enqueue(Task{Name: "first", Run: func(ctx context.Context) error { return nil }}))

	err := p.Enqueue(Task{Name: "second", Run: func(ctx context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestWorkers_RunStartsAll(t *testing.T) {
	first := newTestPool(config.Workers{})
	second := newTestPool(config.Workers{})

	NewWorkers(first, second).Run(context.Background())
	defer first.Stop()
	defer second.Stop()

	assert.True(t, first.started)
	assert.True(t, second.started)
}
