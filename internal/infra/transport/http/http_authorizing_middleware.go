package http

import (
	"context"
	"net/http"
	"strings"

	context_ "github.com/hkato/wanidash/internal/infra/context"
	"github.com/hkato/wanidash/internal/infra/logging"
)

// TokenValidator resolves a bearer token to the username it was issued for.
type TokenValidator interface {
	// Validate checks if the given token is valid.
	// Returns the username associated with the token, whether the token is valid,
	// and any error encountered during validation.
	Validate(ctx context.Context, token string) (string, bool, error)
}

// AuthorizingMiddleware creates middleware that validates bearer tokens.
// Requests without a valid token in the Authorization header are rejected
// with 401. On successful validation, the username is added to the request
// context.
func AuthorizingMiddleware(
	next http.Handler,
	validator TokenValidator,
	log logging.Logger,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			log.WarnContext(r.Context(), "no token provided")
			JSONError(w, "unauthorized", http.StatusUnauthorized)

			return
		}

		username, ok, err := validator.Validate(r.Context(), token)
		if err != nil {
			log.ErrorContext(r.Context(), "validate token failed", "error", err)
			JSONError(w, "unauthorized", http.StatusUnauthorized)

			return
		} else if !ok {
			log.WarnContext(r.Context(), "invalid token")
			JSONError(w, "unauthorized", http.StatusUnauthorized)

			return
		}

		next.ServeHTTP(w, r.WithContext(context_.WithUsername(r.Context(), username)))
	})
}

// BearerToken extracts the bearer token from a request's Authorization header.
// Returns the empty string when the header is missing or not a Bearer scheme.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return ""
	}

	return strings.TrimSpace(token)
}
