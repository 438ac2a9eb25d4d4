package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
)

// Audit event names.
const (
	EventSignup = "account.signup"
	EventVerify = "account.verify"
	EventLogin  = "account.login"
	EventLogout = "account.logout"
)

// AuditLog logs auth events (email, IP).
func AuditLog(log zerolog.Logger, r *http.Request, event, email string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("email", email).
		Str("ip", getClientIP(r)).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("auth_audit")
}

// AuditEmit logs the event and, if emitter is non-nil, forwards it to the webhook pipeline.
func AuditEmit(log zerolog.Logger, r *http.Request, emitter ports.WebhookEmitter, event, email string, success bool, errMsg string) {
	AuditLog(log, r, event, email, success, errMsg)
	if emitter == nil {
		return
	}
	err := emitter.Emit(r.Context(), ports.AuditEvent{
		Event:   event,
		Email:   email,
		IP:      getClientIP(r),
		Success: success,
		Err:     errMsg,
	})
	if err != nil {
		log.Warn().Err(err).Str("event", event).Msg("audit webhook enqueue failed")
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}
