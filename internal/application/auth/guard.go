package auth

import (
	"context"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

// SessionGuard decides whether a session is authenticated. It is the only reader of
// session state outside the login/logout use cases.
type SessionGuard struct {
	sessions ports.SessionStore
}

func NewSessionGuard(sessions ports.SessionStore) *SessionGuard {
	return &SessionGuard{sessions: sessions}
}

// Authenticate returns the email bound to sessionID, or ErrUnauthenticated. A session
// store failure also counts as unauthenticated; the cause stays wrapped for logging.
func (g *SessionGuard) Authenticate(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", domerrors.ErrUnauthenticated
	}
	email, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", domerrors.Wrap(domerrors.Unauthenticated, err)
	}
	if email == "" {
		return "", domerrors.ErrUnauthenticated
	}
	return email, nil
}
