package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-user-hub/internal/logger"
)

const processTimeHeader = "X-Process-Time"

// withLogging writes one line when the request arrives and one when the
// response is complete, and reports the handling time back to the client
// in the X-Process-Time header. Panics are not recovered here: the
// recoverer sits outside so failures are observed, not swallowed.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		uri := r.URL.Path
		method := r.Method

		log.Info().Msg(fmt.Sprintf("%s %s", method, uri))

		lw := &responseWriter{
			ResponseWriter: w,
			processedIn:    func() string { return formatSeconds(time.Since(start)) },
		}

		next.ServeHTTP(lw, r)

		duration := time.Since(start)

		log.Info().
			Int("size", lw.size).
			Msg(fmt.Sprintf("%s %s - Status: %d - Time: %s", method, uri, lw.status, formatSeconds(duration)))
	})
}

// formatSeconds renders a duration as fractional seconds, e.g. "0.0042s".
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.4fs", d.Seconds())
}
