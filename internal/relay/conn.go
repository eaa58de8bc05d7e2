package relay

// Conn is the relay's view of one live client session. The transport layer
// (internal/ws) implements it; tests substitute fakes.
//
// Send must not block: implementations enqueue onto a bounded buffer and
// return an error when the buffer is full or the connection is gone. The
// relay treats a send error as "notification not delivered" and moves on.
type Conn interface {
	ID() string
	Send(payload []byte) error
}
