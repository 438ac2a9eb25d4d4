package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/http/response"
)

// Authenticator resolves a session ID to the authenticated email.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (string, error)
}

// RequireSession rejects requests whose session is not authenticated with 401 before
// next runs. On success the email is available via AccountEmailFromContext.
func RequireSession(guard Authenticator, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := guard.Authenticate(r.Context(), SessionIDFromContext(r.Context()))
			if err != nil {
				if cause := errors.Unwrap(err); cause != nil {
					log.Warn().Err(cause).Msg("session lookup failed")
				}
				response.Error(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAccountEmail(r.Context(), email)))
		})
	}
}
