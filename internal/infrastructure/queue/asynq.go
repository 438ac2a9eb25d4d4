package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
)

const (
	TypeSendEmailVerification = "email:email_verification"
	TypeWebhook               = "webhook:emit"
)

// emailVerificationPayload is the JSON body of a TypeSendEmailVerification task.
type emailVerificationPayload struct {
	Email     string `json:"email"`
	VerifyURL string `json:"verify_url"`
}

// RedisClientOpt derives the asynq connection from the options the session store's client
// was built with, so both reach the same server with the same credentials and TLS settings.
func RedisClientOpt(opt *redis.Options) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Network:   opt.Network,
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}
}

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueSendEmailVerification(ctx context.Context, email, verifyURL string) error {
	payload, _ := json.Marshal(emailVerificationPayload{Email: email, VerifyURL: verifyURL})
	task := asynq.NewTask(TypeSendEmailVerification, payload, asynq.MaxRetry(5))
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("email", email).Msg("enqueue email verification failed")
		return err
	}
	return nil
}

// Emit queues the audit event for delivery by the worker's webhook emitter.
func (q *TaskEnqueuer) Emit(ctx context.Context, event ports.AuditEvent) error {
	body, _ := json.Marshal(event)
	task := asynq.NewTask(TypeWebhook, body)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("event", event.Event).Msg("enqueue webhook failed")
		return err
	}
	return nil
}

var (
	_ ports.Notifier       = (*TaskEnqueuer)(nil)
	_ ports.WebhookEmitter = (*TaskEnqueuer)(nil)
)
