package ports

import "context"

// Notifier delivers the verification link out of band (queue, mail, log).
type Notifier interface {
	EnqueueSendEmailVerification(ctx context.Context, email, verifyURL string) error
}
