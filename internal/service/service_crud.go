package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/MKhiriev/go-user-hub/models"
)

// CRUD is the generic service facade over an EntityStorage. Entity services
// embed it to inherit uniform persistence plumbing and per-operation logging,
// then add entity-specific behavior on top.
type CRUD[T models.Entity] struct {
	storage store.EntityStorage[T]
	logger  *logger.Logger
}

// NewCRUD builds the generic facade for one entity type.
func NewCRUD[T models.Entity](storage store.EntityStorage[T], logger *logger.Logger) *CRUD[T] {
	return &CRUD[T]{storage: storage, logger: logger}
}

// GetByID fetches a single record by primary key.
func (c *CRUD[T]) GetByID(ctx context.Context, id int64) (T, error) {
	var zero T

	entity, err := c.storage.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", id).Msg("record lookup failed")
		return zero, fmt.Errorf("record lookup failed: %w", err)
	}

	return entity, nil
}

// List returns the records matching opts.
func (c *CRUD[T]) List(ctx context.Context, opts store.ListOptions) ([]T, error) {
	entities, err := c.storage.List(ctx, opts)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("record listing failed")
		return nil, fmt.Errorf("record listing failed: %w", err)
	}

	return entities, nil
}

// Count returns the number of records matching the filter in opts,
// ignoring pagination.
func (c *CRUD[T]) Count(ctx context.Context, opts store.ListOptions) (int64, error) {
	total, err := c.storage.Count(ctx, opts)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("record counting failed")
		return 0, fmt.Errorf("record counting failed: %w", err)
	}

	return total, nil
}

// Create persists a new record and returns it with server-assigned fields.
func (c *CRUD[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T

	created, err := c.storage.Create(ctx, entity)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("record creation failed")
		return zero, fmt.Errorf("record creation failed: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("id", created.ID()).Msg("record created")
	return created, nil
}

// Update applies the given column/value pairs to the record id and returns
// the updated record.
func (c *CRUD[T]) Update(ctx context.Context, id int64, fields map[string]any) (T, error) {
	var zero T

	if len(fields) == 0 {
		return c.GetByID(ctx, id)
	}

	updated, err := c.storage.Update(ctx, id, fields)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", id).Msg("record update failed")
		return zero, fmt.Errorf("record update failed: %w", err)
	}

	return updated, nil
}

// Delete removes the record id permanently.
func (c *CRUD[T]) Delete(ctx context.Context, id int64) error {
	if err := c.storage.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", id).Msg("record deletion failed")
		return fmt.Errorf("record deletion failed: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("id", id).Msg("record deleted")
	return nil
}

// SoftDelete disables the record id instead of removing it.
func (c *CRUD[T]) SoftDelete(ctx context.Context, id int64) (T, error) {
	var zero T

	disabled, err := c.storage.SoftDelete(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", id).Msg("record soft deletion failed")
		return zero, fmt.Errorf("record soft deletion failed: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("id", id).Msg("record soft deleted")
	return disabled, nil
}
