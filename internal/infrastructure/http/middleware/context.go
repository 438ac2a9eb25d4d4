package middleware

import "context"

type contextKey string

const (
	sessionIDContextKey contextKey = "session_id"
	accountContextKey   contextKey = "account_email"
)

// WithSessionID injects the caller's session ID into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey, sessionID)
}

// SessionIDFromContext returns the session ID, or "" when SessionCookies did not run.
func SessionIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(sessionIDContextKey).(string)
	return s
}

// WithAccountEmail injects the authenticated email into the context.
func WithAccountEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, accountContextKey, email)
}

// AccountEmailFromContext returns the email set by RequireSession, or "".
func AccountEmailFromContext(ctx context.Context) string {
	s, _ := ctx.Value(accountContextKey).(string)
	return s
}
