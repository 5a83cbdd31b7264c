package scheduler

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-user-hub/internal/config"
	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/mock"
	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/MKhiriev/go-user-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestScheduler_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := NewScheduler(config.Scheduler{Enabled: false}, mock.NewMockUserService(ctrl), nil, logger.Nop())

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestScheduler_InvalidCleanupSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := NewScheduler(config.Scheduler{
		Enabled:         true,
		CleanupSchedule: "not a cron line",
	}, mock.NewMockUserService(ctrl), nil, logger.Nop())

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestScheduler_StartAndStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := NewScheduler(config.Scheduler{Enabled: true}, mock.NewMockUserService(ctrl), nil, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())

	// a second Stop must be a harmless no-op
	s.Stop()
}

func TestScheduler_RunCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userService := mock.NewMockUserService(ctrl)
	s := NewScheduler(config.Scheduler{Enabled: true}, userService, nil, logger.Nop())
	ctx := context.Background()

	userService.EXPECT().
		ListUsers(ctx, store.ListOptions{
			Filter: map[string]any{"is_active": false},
			Limit:  1,
		}).
		Return([]models.User{}, int64(3), nil)

	s.runCleanup(ctx)
}

func TestScheduler_RunReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userService := mock.NewMockUserService(ctrl)
	s := NewScheduler(config.Scheduler{Enabled: true}, userService, nil, logger.Nop())
	ctx := context.Background()

	userService.EXPECT().
		ListUsers(ctx, store.ListOptions{Limit: 1}).
		Return([]models.User{}, int64(10), nil)
	userService.EXPECT().
		ListUsers(ctx, store.ListOptions{
			Filter: map[string]any{"is_active": true},
			Limit:  1,
		}).
		Return([]models.User{}, int64(8), nil)

	s.runReport(ctx)
}

func TestScheduler_HealthCheckWithoutDB(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := NewScheduler(config.Scheduler{Enabled: true}, mock.NewMockUserService(ctrl), nil, logger.Nop())

	// must not panic with a nil database
	s.runHealthCheck(context.Background())
}
