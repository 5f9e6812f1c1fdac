package notifications

import (
	"context"
	"encoding/json"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"

	"cloud.google.com/go/pubsub"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// PubSubNotifier publishes each notification as a JSON envelope. The kind and the
// aggregate id travel as attributes so subscriptions can filter without decoding.
type PubSubNotifier struct {
	client *pubsub.Client
	topic  *pubsub.Topic
	now    func() time.Time
}

var _ interfaces.INotifier = (*PubSubNotifier)(nil)

// NewPubSubNotifier uses Application Default Credentials unless credentialsJSON is set.
func NewPubSubNotifier(ctx context.Context, projectID, topicName, credentialsJSON string) (*PubSubNotifier, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}
	return &PubSubNotifier{
		client: client,
		topic:  client.Topic(topicName),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (n *PubSubNotifier) Notify(ctx context.Context, evt entities.Notification) error {
	msg, err := encode(evt, n.now())
	if err != nil {
		return err
	}
	id, err := n.topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return err
	}
	log.Debug().Str("kind", string(evt.Kind())).Str("aggregate_id", evt.AggregateID()).Str("message_id", id).
		Msg("[notification][pubsub] published")
	return nil
}

func (n *PubSubNotifier) Close() error {
	n.topic.Stop()
	return n.client.Close()
}

func encode(evt entities.Notification, at time.Time) (*pubsub.Message, error) {
	data, err := json.Marshal(entities.NewNotificationEnvelope(evt, at))
	if err != nil {
		return nil, err
	}
	return &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"kind":         string(evt.Kind()),
			"aggregate_id": evt.AggregateID(),
		},
	}, nil
}
