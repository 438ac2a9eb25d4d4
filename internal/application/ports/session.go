package ports

import "context"

// SessionStore keeps server-side session state keyed by an opaque session ID.
// The only attribute kept is the authenticated email.
type SessionStore interface {
	// Get returns the email bound to sessionID, or "" when the session is empty or unknown.
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, email string) error
	Clear(ctx context.Context, sessionID string) error
}
