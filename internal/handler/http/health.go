package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/utils"
)

type healthResponse struct {
	Status string `json:"status"`
}

// health implements GET /health: a liveness probe with no dependencies.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}

// healthDB implements GET /health/db: it pings the database and reports
// 503 when the round trip fails.
func (h *Handler) healthDB(w http.ResponseWriter, r *http.Request) {
	if h.db == nil || h.db.DB == nil {
		utils.WriteError(w, "database is not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.db.PingContext(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("database ping failed")
		utils.WriteError(w, "database is unreachable", http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}
