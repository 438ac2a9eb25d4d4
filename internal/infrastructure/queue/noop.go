package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
)

// LogNotifier stands in for the mail queue when Redis/Asynq is not configured: it only logs
// the verification link.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) EnqueueSendEmailVerification(ctx context.Context, email, verifyURL string) error {
	n.log.Info().
		Str("email", email).
		Str("verify_url", verifyURL).
		Msg("email verification (queue disabled; log only)")
	return nil
}

var _ ports.Notifier = (*LogNotifier)(nil)
