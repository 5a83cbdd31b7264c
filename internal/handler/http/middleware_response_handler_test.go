package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_RecordsStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(201)
	n, err := w.Write([]byte("abcde"))

	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 201, w.status)
	assert.Equal(t, 5, w.size)
	assert.Equal(t, 201, rec.Code)
}

func TestResponseWriter_SecondWriteHeaderIsIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(404)
	w.WriteHeader(500)

	assert.Equal(t, 404, w.status)
	assert.Equal(t, 404, rec.Code)
}

func TestResponseWriter_WriteImpliesOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	_, _ = w.Write([]byte("body"))
	_, _ = w.Write([]byte("more"))

	assert.Equal(t, 200, w.status)
	assert.Equal(t, 8, w.size)
}

func TestResponseWriter_StampsProcessTimeOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{
		ResponseWriter: rec,
		processedIn:    func() string { return "0.0001s" },
	}

	w.WriteHeader(200)

	assert.Equal(t, "0.0001s", rec.Header().Get(processTimeHeader))
}
