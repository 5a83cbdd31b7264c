package service

import (
	"github.com/MKhiriev/go-user-hub/internal/config"
	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/objstore"
	"github.com/MKhiriev/go-user-hub/internal/store"
)

// Services aggregates every service the transport layer depends on.
type Services struct {
	AuthService   AuthService
	UserService   UserService
	UploadService UploadService
}

// NewServices wires all services to their storage backends.
func NewServices(storages *store.Storages, objectStore objstore.ObjectStore, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	authService := NewAuthService(storages.UserRepository, cfg.Auth, logger)

	return &Services{
		AuthService:   authService,
		UserService:   NewUserService(storages.UserRepository, authService, logger),
		UploadService: NewUploadService(objectStore, cfg.Storage.S3, logger),
	}
}
