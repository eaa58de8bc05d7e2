package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dumichanda/LoveOffer-sub001/internal/pubsub"
)

// BusSubscriber connects the message bus to the relay's publish API. The
// persistence side announces committed writes on the bus; this subscriber
// turns them into socket fan-outs.
type BusSubscriber struct {
	subscriber pubsub.Subscriber
	relay      *Relay
}

// NewBusSubscriber creates a subscriber feeding the given relay.
func NewBusSubscriber(sub pubsub.Subscriber, r *Relay) *BusSubscriber {
	return &BusSubscriber{
		subscriber: sub,
		relay:      r,
	}
}

// Start begins listening for domain events. It returns once the
// subscriptions are active; handling continues until the context is
// canceled.
func (bs *BusSubscriber) Start(ctx context.Context) error {
	slog.Info("Starting relay bus subscriber")

	if err := bs.subscriber.Subscribe(ctx, TopicMessageCreated, bs.handleMessageCreated); err != nil {
		return fmt.Errorf("subscribing to %s: %w", TopicMessageCreated, err)
	}
	if err := bs.subscriber.Subscribe(ctx, TopicMessagesRead, bs.handleMessagesRead); err != nil {
		return fmt.Errorf("subscribing to %s: %w", TopicMessagesRead, err)
	}
	return nil
}

func (bs *BusSubscriber) handleMessageCreated(ctx context.Context, msg pubsub.Message) error {
	var event MessageCreated
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("unmarshalling message created event: %w", err)
	}
	bs.relay.PublishNewMessage(event.ChatID, event.Message, event.ParticipantUserIDs)
	return nil
}

func (bs *BusSubscriber) handleMessagesRead(ctx context.Context, msg pubsub.Message) error {
	var event MessagesRead
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("unmarshalling messages read event: %w", err)
	}
	bs.relay.PublishMessagesRead(event.ChatID, event.ReadByUserID, event.ParticipantUserIDs)
	return nil
}
