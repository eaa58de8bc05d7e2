package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus. The payload
// is opaque to the bus; producers and consumers agree on its JSON shape per
// topic (see internal/relay/topics.go).
type Message struct {
	// Topic identifies the channel the message belongs to (e.g. "chat.message.created").
	Topic string
	// UserID identifies the user the message concerns, when there is one.
	UserID string
	// Payload contains the raw message data.
	Payload []byte
	// Metadata carries arbitrary key-value context (e.g. timestamps).
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the bus.
type Subscriber interface {
	// Subscribe starts listening to the given topic. It returns once the
	// subscription is active; handling runs in the background until the
	// context is canceled.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
