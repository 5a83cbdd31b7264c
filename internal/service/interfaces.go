package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/MKhiriev/go-user-hub/models"
)

// AuthService covers the full credential lifecycle: registration-time
// password hashing, login verification, token issuance and parsing, and
// resolving the principal behind a bearer token.
//
//go:generate mockgen -source=interfaces.go -destination=../mock/service.go -package=mock
type AuthService interface {
	// Login verifies username/password credentials and returns the account
	// on success.
	Login(ctx context.Context, username, password string) (models.User, error)

	// CreateToken issues a signed JWT for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw JWT string and returns the decoded token.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// ResolveCurrentUser turns a raw bearer token into the account it was
	// issued for. Every failure mode collapses to ErrUnauthorized.
	ResolveCurrentUser(ctx context.Context, tokenString string) (models.User, error)

	// RequireActive rejects disabled accounts.
	RequireActive(ctx context.Context, user models.User) error

	// AuthorizeMutation checks that actor may mutate the account targetID.
	AuthorizeMutation(ctx context.Context, actor models.User, targetID int64) error

	// HashPassword produces the storage form of a plaintext password.
	HashPassword(password string) (string, error)
}

// UserService manages principal accounts: registration, lookup, listing,
// profile mutation, and deactivation.
type UserService interface {
	CreateUser(ctx context.Context, user models.User, password string) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context, opts store.ListOptions) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	DeactivateUser(ctx context.Context, id int64) (models.User, error)
}

// UploadService validates inbound files, stores them, and brokers
// time-limited retrieval URLs.
type UploadService interface {
	// UploadImage validates and stores an image file, returning a
	// descriptor with the generated key and a presigned URL.
	UploadImage(ctx context.Context, filename, contentType string, size int64, body io.Reader) (models.UploadArtifact, error)

	// PresignURL returns a fresh presigned URL for an already stored key.
	PresignURL(ctx context.Context, key string) (models.UploadArtifact, error)
}
