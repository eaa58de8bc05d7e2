package relay

import (
	"encoding/json"

	"github.com/dumichanda/LoveOffer-sub001/internal/pubsub"
)

// Bus topics the relay participates in. The persistence side publishes the
// chat.* topics strictly after the corresponding write has committed; the
// relay publishes the ws.* lifecycle topics for anyone who cares to observe
// connections.
const (
	TopicMessageCreated     = "chat.message.created"
	TopicMessagesRead       = "chat.messages.read"
	TopicClientConnected    = "ws.client.connected"
	TopicClientDisconnected = "ws.client.disconnected"
)

// MessageCreated is the bus payload for a chat message that has been
// persisted. Message is kept opaque; the relay forwards it untouched.
type MessageCreated struct {
	ChatID             string          `json:"chatId"`
	Message            json.RawMessage `json:"message"`
	ParticipantUserIDs []string        `json:"participantUserIds"`
}

// MessagesRead is the bus payload for a read-receipt that has been persisted.
type MessagesRead struct {
	ChatID             string   `json:"chatId"`
	ReadByUserID       string   `json:"readByUserId"`
	ParticipantUserIDs []string `json:"participantUserIds"`
}

// ClientConnected announces a new live connection.
type ClientConnected struct {
	ConnectionID string `json:"connectionId"`
}

// ClientDisconnected announces that a connection is gone and its room
// memberships have been purged.
type ClientDisconnected struct {
	ConnectionID string `json:"connectionId"`
}

// Typed events for the topics above.
var (
	MessageCreatedEvent     = pubsub.NewEvent[MessageCreated](TopicMessageCreated)
	MessagesReadEvent       = pubsub.NewEvent[MessagesRead](TopicMessagesRead)
	ClientConnectedEvent    = pubsub.NewEvent[ClientConnected](TopicClientConnected)
	ClientDisconnectedEvent = pubsub.NewEvent[ClientDisconnected](TopicClientDisconnected)
)
