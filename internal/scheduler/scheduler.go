// Package scheduler runs the application's periodic background jobs on
// cron expressions: stale-data cleanup, an hourly usage report, and a
// recurring database health check.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-user-hub/internal/config"
	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/service"
	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/robfig/cron/v3"
)

const (
	// defaultCleanupSchedule runs the stale-data cleanup daily at midnight.
	defaultCleanupSchedule = "0 0 * * *"

	// reportSchedule runs the usage report at the top of every hour.
	reportSchedule = "0 * * * *"

	// healthSchedule probes the database every five minutes.
	healthSchedule = "*/5 * * * *"
)

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron        *cron.Cron
	cfg         config.Scheduler
	userService service.UserService
	db          *store.DB
	logger      *logger.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler builds a Scheduler wired to the user service (cleanup and
// report jobs) and the database (health job).
func NewScheduler(cfg config.Scheduler, userService service.UserService, db *store.DB, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		cfg:         cfg,
		userService: userService,
		db:          db,
		logger:      log.WithComponent("scheduler"),
	}
}

// Start registers the three jobs and starts the cron runner. It is a
// no-op when the scheduler is disabled in configuration. The jobs stop
// when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.Enabled {
		s.logger.Info().Msg("scheduler disabled, skipping start")
		return nil
	}

	cleanupSchedule := s.cfg.CleanupSchedule
	if cleanupSchedule == "" {
		cleanupSchedule = defaultCleanupSchedule
	}
	if _, err := cron.ParseStandard(cleanupSchedule); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", cleanupSchedule, err)
	}

	jobs := []struct {
		name     string
		schedule string
		run      func(context.Context)
	}{
		{"stale-data-cleanup", cleanupSchedule, s.runCleanup},
		{"usage-report", reportSchedule, s.runReport},
		{"db-health-check", healthSchedule, s.runHealthCheck},
	}

	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.schedule, func() { job.run(ctx) }); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
		s.logger.Info().Str("job", job.name).Str("schedule", job.schedule).Msg("job scheduled")
	}

	s.cron.Start()
	s.running = true
	s.logger.Info().Msg("scheduler started")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the cron runner and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info().Msg("scheduler stopped")
}

// IsRunning reports whether the cron runner is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// runCleanup counts accounts disabled by soft deletion and reports them as
// cleanup candidates.
func (s *Scheduler) runCleanup(ctx context.Context) {
	log := s.logger
	log.Info().Msg("stale-data cleanup started")

	_, stale, err := s.userService.ListUsers(ctx, store.ListOptions{
		Filter: map[string]any{"is_active": false},
		Limit:  1,
	})
	if err != nil {
		log.Err(err).Msg("stale-data cleanup failed")
		return
	}

	log.Info().Int64("stale_accounts", stale).Msg("stale-data cleanup finished")
}

// runReport logs the hourly account totals.
func (s *Scheduler) runReport(ctx context.Context) {
	log := s.logger

	_, total, err := s.userService.ListUsers(ctx, store.ListOptions{Limit: 1})
	if err != nil {
		log.Err(err).Msg("usage report failed")
		return
	}

	_, active, err := s.userService.ListUsers(ctx, store.ListOptions{
		Filter: map[string]any{"is_active": true},
		Limit:  1,
	})
	if err != nil {
		log.Err(err).Msg("usage report failed")
		return
	}

	log.Info().
		Int64("total_accounts", total).
		Int64("active_accounts", active).
		Msg("hourly usage report")
}

// runHealthCheck pings the database and logs the outcome.
func (s *Scheduler) runHealthCheck(ctx context.Context) {
	if s.db == nil || s.db.DB == nil {
		s.logger.Warn().Msg("health check skipped: database is not configured")
		return
	}

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Err(err).Msg("health check failed: database unreachable")
		return
	}

	s.logger.Debug().Msg("health check passed")
}
