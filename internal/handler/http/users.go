package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/service"
	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/MKhiriev/go-user-hub/internal/utils"
	"github.com/MKhiriev/go-user-hub/models"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// listUsers implements GET /api/v1/users/. Pagination is controlled with
// the 1-based "page" and "size" query parameters; "is_active" and "gender"
// filter the collection and "order_by" sorts it ("-" prefix for
// descending).
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	page, size := paginationParams(r)

	opts := store.ListOptions{
		Filter: map[string]any{},
		Offset: uint64((page - 1) * size),
		Limit:  uint64(size),
	}

	if isActive := r.URL.Query().Get("is_active"); isActive != "" {
		parsed, err := strconv.ParseBool(isActive)
		if err != nil {
			utils.WriteError(w, "invalid is_active filter", http.StatusBadRequest)
			return
		}
		opts.Filter["is_active"] = parsed
	}
	if gender := r.URL.Query().Get("gender"); gender != "" {
		opts.Filter["gender"] = gender
	}
	if orderBy := r.URL.Query().Get("order_by"); orderBy != "" {
		opts.OrderBy = strings.Split(orderBy, ",")
	}

	users, total, err := h.services.UserService.ListUsers(ctx, opts)
	if err != nil {
		log.Err(err).Msg("listing users failed")
		respondError(w, err)
		return
	}

	pages := total / size
	if total%size != 0 {
		pages++
	}

	utils.WriteJSON(w, models.ListResponse[models.User]{
		Data:  users,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pages,
	}, http.StatusOK)
}

// currentUser implements GET /api/v1/users/me: it returns the principal
// resolved by the auth middleware without touching storage again.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentUserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.DataResponse[models.User]{Data: principal}, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDFromURL(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.UserService.GetUser(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user lookup failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse[models.User]{Data: foundUser}, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDFromURL(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.authorizeMutation(r, id); err != nil {
		respondError(w, err)
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg(ErrInvalidJSONBody.Error())
		utils.WriteError(w, ErrInvalidJSONBody.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.services.UserService.UpdateUser(ctx, id, update)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user update failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse[models.User]{Data: updated}, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDFromURL(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.authorizeMutation(r, id); err != nil {
		respondError(w, err)
		return
	}

	if err := h.services.UserService.DeleteUser(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("user deletion failed")
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// softDeleteUser implements DELETE /api/v1/users/{id}/soft: the account is
// disabled, not removed.
func (h *Handler) softDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDFromURL(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.authorizeMutation(r, id); err != nil {
		respondError(w, err)
		return
	}

	disabled, err := h.services.UserService.DeactivateUser(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user deactivation failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse[models.User]{
		Data:    disabled,
		Message: "user deactivated",
	}, http.StatusOK)
}

// authorizeMutation applies the self-or-superuser gate for mutations of
// account targetID.
func (h *Handler) authorizeMutation(r *http.Request, targetID int64) error {
	principal, ok := currentUserFromContext(r.Context())
	if !ok {
		return service.ErrUnauthorized
	}

	return h.services.AuthService.AuthorizeMutation(r.Context(), principal, targetID)
}

func userIDFromURL(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidUserID
	}
	return id, nil
}

func paginationParams(r *http.Request) (page, size int64) {
	page, size = 1, defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			size = min(parsed, maxPageSize)
		}
	}

	return page, size
}
