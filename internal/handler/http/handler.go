package http

import (
	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/service"
	"github.com/MKhiriev/go-user-hub/internal/store"
)

type Handler struct {
	services *service.Services

	// db is consulted by the database health probe only.
	db *store.DB

	logger *logger.Logger
}

func NewHandler(services *service.Services, db *store.DB, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		db:       db,
		logger:   logger,
	}
}
