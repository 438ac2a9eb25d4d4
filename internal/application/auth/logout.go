package auth

import (
	"context"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
)

type LogoutInput struct {
	SessionID string
}

// Logout clears the caller's session. The returned error is informational only:
// callers report success regardless.
type Logout struct {
	sessions ports.SessionStore
}

func NewLogout(sessions ports.SessionStore) *Logout {
	return &Logout{sessions: sessions}
}

func (uc *Logout) Execute(ctx context.Context, input LogoutInput) error {
	if input.SessionID == "" {
		return nil
	}
	return uc.sessions.Clear(ctx, input.SessionID)
}
