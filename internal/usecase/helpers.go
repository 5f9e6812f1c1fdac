package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// numberAttempts bounds retries when a generated document number is already reserved.
const numberAttempts = 3

// documentNumber builds human-facing numbers such as COT-20261018-3F9A1C.
func documentNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}

// notify never fails the caller: the transition is already committed.
func notify(ctx context.Context, notifier interfaces.INotifier, n entities.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, n); err != nil {
		log.Warn().Err(err).Str("kind", string(n.Kind())).Str("aggregate_id", n.AggregateID()).
			Msg("[notification][usecase] publish failed")
	}
}
