package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-hub/internal/utils"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// withRequestID assigns every request its id: the inbound X-Request-ID
// header when present, a fresh UUID otherwise. The id is stored in the
// request context and bound to a request-scoped logger before any
// downstream code runs, and echoed back in the response header.
func (h *Handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}

		ctx := utils.SetRequestIDToContext(r.Context(), requestID)

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", requestID)
		})
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}
