package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWithRequestID_EchoesInboundID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)

	var seenInContext string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenInContext, _ = utils.GetRequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "client-supplied-id")
	rec := httptest.NewRecorder()

	h.withRequestID(next).ServeHTTP(rec, req)

	assert.Equal(t, "client-supplied-id", seenInContext)
	assert.Equal(t, "client-supplied-id", rec.Header().Get(requestIDHeader))
}

func TestWithRequestID_GeneratesWhenMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)

	var seenInContext string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenInContext, _ = utils.GetRequestIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	h.withRequestID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seenInContext)
	assert.Equal(t, seenInContext, rec.Header().Get(requestIDHeader))
}

func TestWithRequestID_DownstreamLogsCarryTheInboundID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger("test", logger.Config{})
	log.Logger = log.Output(&buf)

	h := &Handler{logger: log}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("handling request")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")

	h.withRequestID(next).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "expected one JSON log record, got %q", buf.String())
	assert.Equal(t, "handling request", entry["message"])
	assert.Equal(t, "abc-123", entry["request_id"])
	assert.Equal(t, "test", entry["role"])
}

func TestWithRequestID_ConcurrentRequestsAreIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)

	const workers = 16

	start := make(chan struct{})
	ids := make([]string, workers)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := utils.GetRequestIDFromContext(r.Context())
		_, _ = w.Write([]byte(requestID))
	})
	handler := h.withRequestID(next)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			ids[i] = rec.Body.String()
		}()
	}

	close(start)
	wg.Wait()

	seen := make(map[string]struct{}, workers)
	for _, id := range ids {
		require.NotEmpty(t, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers, "every request must observe its own id")
}
