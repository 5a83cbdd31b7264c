package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-hub/internal/service"
	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/MKhiriev/go-user-hub/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrWrongPassword:       http.StatusUnauthorized,
	service.ErrInvalidToken:        http.StatusUnauthorized,
	service.ErrUnauthorized:        http.StatusUnauthorized,
	service.ErrInactiveUser:        http.StatusBadRequest,
	service.ErrForbidden:           http.StatusForbidden,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,
	service.ErrFileValidation:      http.StatusBadRequest,
	service.ErrUpstreamFailure:     http.StatusBadGateway,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:    http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError translates a service/storage error into the standard
// {"detail": ...} error body with the mapped status code. Internal errors
// are not echoed to the client verbatim.
func respondError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = http.StatusText(http.StatusInternalServerError)
	}

	utils.WriteError(w, detail, status)
}
