package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/http/response"
)

const sessionIDValue = "sid"

// SessionCookieOptions configures the cookie that carries the session ID.
type SessionCookieOptions struct {
	Name   string
	MaxAge int // seconds
	Secure bool
}

// SessionCookies issues and reads a signed cookie holding an opaque session ID. The cookie
// carries no account data; session state lives server-side under that ID.
type SessionCookies struct {
	store *sessions.CookieStore
	name  string
	log   zerolog.Logger
}

func NewSessionCookies(secret []byte, opts SessionCookieOptions, log zerolog.Logger) *SessionCookies {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	name := opts.Name
	if name == "" {
		name = "verigate_session"
	}
	return &SessionCookies{store: store, name: name, log: log}
}

func (s *SessionCookies) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A tampered or expired cookie yields a fresh session along with the error.
		sess, err := s.store.Get(r, s.name)
		if err != nil {
			s.log.Debug().Err(err).Msg("discarding invalid session cookie")
		}
		sid, _ := sess.Values[sessionIDValue].(string)
		if sid == "" {
			sid = uuid.NewString()
			sess.Values[sessionIDValue] = sid
			if err := sess.Save(r, w); err != nil {
				s.log.Error().Err(err).Msg("save session cookie")
				response.Error(w, domerrors.Internal(err))
				return
			}
		}
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sid)))
	})
}

// Reissue replaces the session ID carried by the caller's cookie. Login uses it so that
// a cookie obtained before authentication never becomes an authenticated one.
func (s *SessionCookies) Reissue(w http.ResponseWriter, r *http.Request, sessionID string) error {
	sess := sessions.NewSession(s.store, s.name)
	opts := *s.store.Options
	sess.Options = &opts
	sess.Values[sessionIDValue] = sessionID
	return s.store.Save(r, w, sess)
}
