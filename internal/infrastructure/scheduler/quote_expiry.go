package scheduler

import (
	"context"
	"time"

	"cartonera/internal/domain/entities"

	"github.com/rs/zerolog/log"
)

type quoteExpirer interface {
	ExpireDue(ctx context.Context) ([]entities.Quote, error)
}

// RunQuoteExpiry sweeps quotes past their validity every interval until ctx is done.
// The first sweep runs immediately. A failed sweep is logged and retried on the next tick.
func RunQuoteExpiry(ctx context.Context, uc quoteExpirer, interval time.Duration) {
	if interval <= 0 {
		log.Info().Msg("[quote][scheduler] expiry sweep disabled")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		sweep(ctx, uc)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func sweep(ctx context.Context, uc quoteExpirer) {
	expired, err := uc.ExpireDue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[quote][scheduler] expiry sweep failed")
		return
	}
	if len(expired) > 0 {
		log.Info().Int("expired", len(expired)).Msg("[quote][scheduler] quotes expired")
	}
}
