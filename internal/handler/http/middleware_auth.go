package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/utils"
	"github.com/MKhiriev/go-user-hub/models"
)

// ctxKey is a private type for context keys owned by this package.
type ctxKey int

// currentUserCtxKey stores the resolved principal of an authenticated
// request.
const currentUserCtxKey ctxKey = iota

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer
// token, and resolves the principal behind it via
// [service.AuthService.ResolveCurrentUser]. Disabled accounts are rejected
// by the require-active gate. On success the resolved account is stored in
// the request context so downstream handlers never re-parse the token.
//
// The middleware answers 401 for a missing or malformed header, a bad
// token, and a token whose subject no longer exists; an inactive account
// gets the status mapped for service.ErrInactiveUser.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Error().Msg(ErrEmptyAuthorizationHeader.Error())
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Msg("malformed authorization header")
			utils.WriteError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()

		currentUser, err := h.services.AuthService.ResolveCurrentUser(ctx, tokenString)
		if err != nil {
			respondError(w, err)
			return
		}

		if err := h.services.AuthService.RequireActive(ctx, currentUser); err != nil {
			respondError(w, err)
			return
		}

		ctx = context.WithValue(ctx, currentUserCtxKey, currentUser)
		ctx = context.WithValue(ctx, utils.UsernameCtxKey, currentUser.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUserFromContext returns the principal stored by the auth
// middleware. The second value is false on routes the middleware does not
// guard.
func currentUserFromContext(ctx context.Context) (models.User, bool) {
	currentUser, ok := ctx.Value(currentUserCtxKey).(models.User)
	return currentUser, ok
}
