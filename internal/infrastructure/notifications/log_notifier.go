package notifications

import (
	"context"
	"encoding/json"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

// LogNotifier writes notifications to the log. Used when Pub/Sub is not configured.
type LogNotifier struct{}

var _ interfaces.INotifier = LogNotifier{}

func (LogNotifier) Notify(_ context.Context, evt entities.Notification) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	log.Info().Str("kind", string(evt.Kind())).Str("aggregate_id", evt.AggregateID()).RawJSON("payload", payload).
		Msg("[notification][log] event")
	return nil
}
