package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/verigate/internal/application/auth"
	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/http/response"
)

const (
	MsgSignedUp        = "You've signed up successfully. Please validate your email address by clicking on the link we've sent you."
	MsgVerified        = "You've now been verified. Enjoy using our service"
	MsgAlreadyVerified = "You've already verified your email."
	MsgLoggedIn        = "You are now logged in"
	MsgLoggedOut       = "Logged out successfully"
)

// AuthHandlerOptions tunes optional behaviour of AuthHandler.
type AuthHandlerOptions struct {
	// ExposeVerifyLink returns the verification link in the signup response. For
	// development setups without a mail relay.
	ExposeVerifyLink bool
	Webhooks         ports.WebhookEmitter
}

// SessionCookieWriter points the caller's cookie at a new session ID.
type SessionCookieWriter interface {
	Reissue(w http.ResponseWriter, r *http.Request, sessionID string) error
}

type AuthHandler struct {
	signup      *auth.Signup
	verifyEmail *auth.VerifyEmail
	login       *auth.Login
	logout      *auth.Logout
	cookies     SessionCookieWriter
	exposeLink  bool
	webhooks    ports.WebhookEmitter
	log         zerolog.Logger
}

func NewAuthHandler(signup *auth.Signup, verifyEmail *auth.VerifyEmail, login *auth.Login, logout *auth.Logout, cookies SessionCookieWriter, opts AuthHandlerOptions, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		signup:      signup,
		verifyEmail: verifyEmail,
		login:       login,
		logout:      logout,
		cookies:     cookies,
		exposeLink:  opts.ExposeVerifyLink,
		webhooks:    opts.Webhooks,
		log:         log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	creds, err := readCredentials(w, r)
	if err != nil {
		h.fail(w, r, EventSignup, "signup", creds.Email, err)
		return
	}
	result, err := h.signup.Execute(r.Context(), auth.SignupInput{
		Email:    creds.Email,
		Password: creds.Password,
	})
	if err != nil {
		h.fail(w, r, EventSignup, "signup", creds.Email, err)
		return
	}
	h.succeed(r, EventSignup, "signup", result.Account.Email)
	if h.exposeLink {
		response.JSON(w, http.StatusOK, MsgSignedUp, map[string]string{"link": result.VerifyURL})
		return
	}
	response.JSON(w, http.StatusOK, MsgSignedUp)
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	result, err := h.verifyEmail.Execute(r.Context(), auth.VerifyEmailInput{
		ID: r.URL.Query().Get("id"),
	})
	if err != nil {
		h.fail(w, r, EventVerify, "verify", "", err)
		return
	}
	h.succeed(r, EventVerify, "verify", result.Account.Email)
	if result.AlreadyVerified {
		response.JSON(w, http.StatusOK, MsgAlreadyVerified)
		return
	}
	response.JSON(w, http.StatusOK, MsgVerified)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	creds, err := readCredentials(w, r)
	if err != nil {
		// Even a rejected attempt must drop whatever identity the session held.
		if lerr := h.logout.Execute(r.Context(), auth.LogoutInput{SessionID: middleware.SessionIDFromContext(r.Context())}); lerr != nil {
			h.log.Error().Err(lerr).Msg("clear session failed")
		}
		h.fail(w, r, EventLogin, "login", creds.Email, err)
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		SessionID: middleware.SessionIDFromContext(r.Context()),
		Email:     creds.Email,
		Password:  creds.Password,
	})
	if err != nil {
		h.fail(w, r, EventLogin, "login", creds.Email, err)
		return
	}
	if err := h.cookies.Reissue(w, r, result.SessionID); err != nil {
		if lerr := h.logout.Execute(r.Context(), auth.LogoutInput{SessionID: result.SessionID}); lerr != nil {
			h.log.Error().Err(lerr).Msg("drop unissued session failed")
		}
		h.fail(w, r, EventLogin, "login", creds.Email, domerrors.Internal(err))
		return
	}
	h.succeed(r, EventLogin, "login", result.Account.Email)
	response.JSON(w, http.StatusOK, MsgLoggedIn)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.logout.Execute(r.Context(), auth.LogoutInput{
		SessionID: middleware.SessionIDFromContext(r.Context()),
	}); err != nil {
		h.log.Error().Err(err).Msg("logout: clear session failed")
	}
	h.succeed(r, EventLogout, "logout", "")
	response.JSON(w, http.StatusOK, MsgLoggedOut)
}

func (h *AuthHandler) succeed(r *http.Request, event, metric, email string) {
	AuditEmit(h.log, r, h.webhooks, event, email, true, "")
	middleware.RecordAuthAttempt(metric, true)
}

func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, event, metric, email string, err error) {
	kind := domerrors.KindOf(err)
	if kind == domerrors.InternalFailure {
		h.log.Error().Err(err).Str("event", event).Msg("request failed")
	}
	AuditEmit(h.log, r, h.webhooks, event, email, false, kind.String())
	middleware.RecordAuthAttempt(metric, false)
	response.Error(w, err)
}
