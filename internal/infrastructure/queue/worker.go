package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
)

// Worker runs Asynq task handlers (verification mail, audit webhooks).
type Worker struct {
	srv      *asynq.Server
	mux      *asynq.ServeMux
	webhooks ports.WebhookEmitter
	log      zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. webhooks receives the audit
// events queued through TaskEnqueuer.Emit. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, webhooks ports.WebhookEmitter, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	w := &Worker{srv: srv, webhooks: webhooks, log: log}
	w.mux = w.routes()
	return w
}

func (w *Worker) routes() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSendEmailVerification, w.handleSendEmailVerification)
	mux.HandleFunc(TypeWebhook, w.handleWebhook)
	return mux
}

func (w *Worker) handleSendEmailVerification(ctx context.Context, t *asynq.Task) error {
	var p emailVerificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("email verification task payload invalid")
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	// Dev: log the link; production would send email via SMTP/sendgrid etc.
	w.log.Info().
		Str("email", p.Email).
		Str("verify_url", p.VerifyURL).
		Msg("email verification (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleWebhook(ctx context.Context, t *asynq.Task) error {
	var ev ports.AuditEvent
	if err := json.Unmarshal(t.Payload(), &ev); err != nil {
		w.log.Error().Err(err).Msg("webhook task payload invalid")
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if w.webhooks == nil {
		w.log.Debug().Str("event", ev.Event).Msg("webhook task (noop)")
		return nil
	}
	return w.webhooks.Emit(ctx, ev)
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
