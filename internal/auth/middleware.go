package auth

import (
	"context"
	"net/http"
	"strings"

	"innovision/internal/config"
	"innovision/internal/models"
	"innovision/internal/qerrors"
	repo "innovision/internal/repository"
)

// TryAuthCtx resolves the caller's identity and, when one is found, adds the
// User to the request context. Two verification paths are tried in order: the
// session cookie, then an Authorization bearer token. Verification failures
// are swallowed — the request simply proceeds as anonymous.
func TryAuthCtx() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := resolveUser(r)
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctxWithUser := context.WithValue(r.Context(), "currentUser", user)
			next.ServeHTTP(w, r.WithContext(ctxWithUser))
		})
	}
}

// AuthCtx is a middleware that rejects requests without a valid identity. The
// User associated with the request is added to the request context, and can
// be accessed via GetUserFromRequest.
func AuthCtx() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := resolveUser(r)
			if user == nil {
				rejectUnauthorizedRequest(w)
				return
			}

			ctxWithUser := context.WithValue(r.Context(), "currentUser", user)
			next.ServeHTTP(w, r.WithContext(ctxWithUser))
		})
	}
}

// GetUserFromRequest returns the User from the request context. Only works
// with routes behind AuthCtx or TryAuthCtx; returns an error when the caller
// is anonymous.
func GetUserFromRequest(r *http.Request) (*models.User, error) {
	user, ok := r.Context().Value("currentUser").(*models.User)
	if !ok || user == nil {
		return nil, qerrors.UnauthorizedError
	}

	return user, nil
}

// Helpers

// resolveUser tries the session cookie first, then the bearer token.
// First match wins; a failed verification never surfaces past this point.
func resolveUser(r *http.Request) *models.User {
	if tokenCookie, err := r.Cookie(config.Config.SessionCookieName); err == nil {
		if user, err := repo.Repository.VerifySessionCookie(tokenCookie); err == nil {
			return user
		}
	}

	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if user, err := repo.Repository.VerifyBearerToken(token); err == nil {
			return user
		}
	}

	return nil
}

func rejectUnauthorizedRequest(w http.ResponseWriter) {
	http.Error(w, qerrors.UnauthorizedError.Error(), http.StatusUnauthorized)
}
