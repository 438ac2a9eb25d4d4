package retention

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ExpiredSessionSweeper removes sessions past their lifetime. Stores with native expiry
// (Redis) do not need one.
type ExpiredSessionSweeper interface {
	DeleteExpired(ctx context.Context) (int, error)
}

// RunSessionSweep removes expired sessions once.
func RunSessionSweep(ctx context.Context, sessions ExpiredSessionSweeper) (removed int, err error) {
	return sessions.DeleteExpired(ctx)
}

// SweepSessionsEvery runs RunSessionSweep every interval until ctx is done. interval <= 0 = no-op.
func SweepSessionsEvery(ctx context.Context, sessions ExpiredSessionSweeper, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := RunSessionSweep(ctx, sessions)
			if err != nil {
				log.Warn().Err(err).Msg("session sweep failed")
				continue
			}
			if n > 0 {
				log.Debug().Int("removed", n).Msg("expired sessions removed")
			}
		}
	}
}
