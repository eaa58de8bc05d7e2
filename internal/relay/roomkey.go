// Package relay implements the room-based event fan-out layer for the
// LoveOffer platform: it bridges transient WebSocket connections to per-user
// and per-chat rooms and pushes domain events to every connected member.
package relay

// RoomKind discriminates the two room namespaces.
type RoomKind uint8

const (
	// RoomKindUser is a personal room every client joins for its own user ID.
	// Domain events addressed to a user land here regardless of which chat
	// view the client has focused.
	RoomKindUser RoomKind = iota + 1
	// RoomKindChat is the room for one conversation; typing indicators are
	// scoped to it.
	RoomKindChat
)

func (k RoomKind) String() string {
	switch k {
	case RoomKindUser:
		return "user"
	case RoomKindChat:
		return "chat"
	default:
		return "unknown"
	}
}

// RoomKey identifies a broadcast group. It is a tagged pair rather than a
// formatted string so that user and chat namespaces can never collide and
// keys compare structurally.
type RoomKey struct {
	Kind RoomKind
	ID   string
}

// UserRoom returns the key of a user's personal room.
func UserRoom(userID string) RoomKey {
	return RoomKey{Kind: RoomKindUser, ID: userID}
}

// ChatRoom returns the key of a conversation's room.
func ChatRoom(chatID string) RoomKey {
	return RoomKey{Kind: RoomKindChat, ID: chatID}
}

// String renders the key for logs, e.g. "user:u1" or "chat:c42".
func (k RoomKey) String() string {
	return k.Kind.String() + ":" + k.ID
}

// IsZero reports whether the key is the uninitialized value.
func (k RoomKey) IsZero() bool {
	return k.Kind == 0 && k.ID == ""
}
