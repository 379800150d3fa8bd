package server

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/internal/telemetry"
	"github.com/jrsteele09/go-contacts-server/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUser stores the authenticated user
const ContextKeyUser ContextKey = "user"

// RequireAuth validates the Authorization bearer token against the session
// store and injects the resolved user into the request context. Requests
// without a valid, unexpired session fail closed with 401.
func (s *Server) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			telemetry.AuthFailures.Inc()
			writeError(w, err)
			return
		}

		user, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			telemetry.AuthFailures.Inc()
			if apperrors.Status(err) == http.StatusNotFound {
				// The authentication path surfaces every failure as 401.
				writeErrorStatus(w, http.StatusUnauthorized, apperrors.Message(err))
				return
			}
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUser, user)
		next(w, r.WithContext(ctx))
	}
}

// UserFromContext returns the authenticated user injected by RequireAuth.
func UserFromContext(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(ContextKeyUser).(*users.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.ErrMissingToken
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrMissingToken
	}
	return parts[1], nil
}
