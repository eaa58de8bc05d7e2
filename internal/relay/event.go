package relay

import (
	"encoding/json"
	"fmt"
)

// Canonical event names. The wire protocol historically carried two dialects
// (hyphenated and underscored); snake_case is canonical now and the old names
// survive only in the alias table below.
const (
	// Inbound, client to server.
	EventJoinUserRoom = "join_user_room"
	EventJoinChat     = "join_chat"
	EventLeaveChat    = "leave_chat"
	EventTypingStart  = "typing_start"
	EventTypingStop   = "typing_stop"

	// Outbound, server to client.
	EventNewMessage        = "new_message"
	EventMessagesRead      = "messages_read"
	EventUserTyping        = "user_typing"
	EventUserStoppedTyping = "user_stopped_typing"
)

// eventAliases maps legacy inbound event names onto their canonical form.
// Normalization happens once at the decode boundary so the handlers only ever
// see canonical names.
var eventAliases = map[string]string{
	"join-user-room": EventJoinUserRoom,
	"authenticate":   EventJoinUserRoom,
	"join-chat":      EventJoinChat,
	"leave-chat":     EventLeaveChat,
	"typing-start":   EventTypingStart,
	"typing-stop":    EventTypingStop,
}

// CanonicalEventName resolves legacy aliases to the canonical event name.
// Unknown names pass through unchanged.
func CanonicalEventName(name string) string {
	if canonical, ok := eventAliases[name]; ok {
		return canonical
	}
	return name
}

// Event is a named payload addressed to one room, both on the wire and
// inside the router.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

// Encode renders the event to its wire form.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// inboundFrame is the raw envelope read off a client connection. The data
// field stays opaque until the per-event handler decodes it.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func decodeFrame(raw []byte) (inboundFrame, error) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return inboundFrame{}, fmt.Errorf("decoding frame: %w", err)
	}
	if frame.Event == "" {
		return inboundFrame{}, fmt.Errorf("frame has no event name")
	}
	frame.Event = CanonicalEventName(frame.Event)
	return frame, nil
}

// Inbound payload shapes. Required fields are enforced with validator tags;
// a frame failing validation is dropped, never a protocol error back to the
// client.
type joinUserRoomPayload struct {
	UserID string `json:"userId" validate:"required"`
}

type chatRoomPayload struct {
	ChatID string `json:"chatId" validate:"required"`
}

type typingStartPayload struct {
	ChatID   string `json:"chatId" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
	UserName string `json:"userName" validate:"required"`
}

type typingStopPayload struct {
	ChatID string `json:"chatId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

// Outbound payload shapes.

// NewMessagePayload is carried by new_message events on user rooms.
type NewMessagePayload struct {
	ChatID  string          `json:"chatId"`
	Message json.RawMessage `json:"message"`
}

// MessagesReadPayload is carried by messages_read events on user rooms.
type MessagesReadPayload struct {
	ChatID string `json:"chatId"`
	ReadBy string `json:"readBy"`
}

// TypingPayload is carried by user_typing and user_stopped_typing events on
// chat rooms. UserName is set only for user_typing.
type TypingPayload struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
}
