package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-hub/internal/config"
	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_NoAddress(t *testing.T) {
	_, err := NewServer(http.NewServeMux(), config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_AppliesRequestTimeout(t *testing.T) {
	srv, err := NewServer(http.NewServeMux(), config.Server{
		HTTPAddress:    "127.0.0.1:0",
		RequestTimeout: 30 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	inner, ok := srv.(*server)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, inner.httpServer.server.ReadTimeout)
	assert.Equal(t, 30*time.Second, inner.httpServer.server.WriteTimeout)
}

func TestHTTPServer_ShutdownWithoutRunIsSafe(t *testing.T) {
	srv, err := NewServer(http.NewServeMux(), config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	// shutting down a server that never started must not panic or hang
	srv.Shutdown()
}
