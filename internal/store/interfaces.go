package store

import (
	"context"

	"github.com/MKhiriev/go-user-hub/models"
)

// ListOptions carries the filter, sort, and pagination parameters of a
// collection query.
type ListOptions struct {
	// Filter holds equality conditions keyed by column name.
	Filter map[string]any

	// OrderBy lists columns to sort by; a "-" prefix means descending.
	OrderBy []string

	// Offset is the number of records skipped before the first returned one.
	Offset uint64

	// Limit caps the number of returned records. Zero means the storage
	// default (100).
	Limit uint64
}

// EntityStorage is the generic persistence contract consumed by the CRUD
// facade in the service layer. A concrete repository implements it for one
// entity type.
type EntityStorage[T models.Entity] interface {
	Get(ctx context.Context, id int64) (T, error)
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Count(ctx context.Context, opts ListOptions) (int64, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, id int64, fields map[string]any) (T, error)
	Delete(ctx context.Context, id int64) error
	SoftDelete(ctx context.Context, id int64) (T, error)
}

// UserRepository is the persistence contract for principal accounts.
// It extends the generic [EntityStorage] with lookups the auth subsystem
// needs.
//
//go:generate mockgen -source=interfaces.go -destination=../mock/store.go -package=mock
type UserRepository interface {
	EntityStorage[models.User]

	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}
