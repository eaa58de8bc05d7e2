package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/dumichanda/LoveOffer-sub001/internal/pubsub"
)

// ErrAlreadyStarted is returned by Start when the relay is already running.
var ErrAlreadyStarted = errors.New("relay already started")

// Relay is the event fan-out actor. A single dispatch goroutine owns the
// registry and router, so every mutation and every broadcast is serialized:
// events targeting the same room from the same caller arrive in submission
// order, and the membership maps need no locks.
//
// A Relay is explicitly constructed and injected into its host process with
// a Start/Stop lifecycle; there is no ambient global instance.
type Relay struct {
	registry  *Registry
	router    *Router
	publisher pubsub.Publisher
	validate  *validator.Validate

	cmds   chan func()
	done   chan struct{}
	cancel context.CancelFunc

	started  atomic.Bool
	stopOnce sync.Once
}

// New creates a Relay. The publisher receives connection lifecycle events
// and may be nil when nobody listens (e.g. in tests).
func New(pub pubsub.Publisher) *Relay {
	return &Relay{
		registry:  NewRegistry(),
		router:    NewRouter(),
		publisher: pub,
		validate:  validator.New(),
		cmds:      make(chan func(), 256),
		done:      make(chan struct{}),
	}
}

// Start launches the dispatch goroutine. Commands enqueued before Start are
// processed once it runs.
func (r *Relay) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	ctx, r.cancel = context.WithCancel(ctx)
	go r.loop(ctx)
	return nil
}

// Stop terminates the dispatch goroutine and waits for it to exit. Safe to
// call more than once; a relay that never started is a no-op.
func (r *Relay) Stop() {
	if !r.started.Load() {
		return
	}
	r.stopOnce.Do(func() {
		r.cancel()
		<-r.done
	})
}

func (r *Relay) loop(ctx context.Context) {
	defer close(r.done)
	slog.Info("Relay dispatch loop started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("Relay dispatch loop stopped")
			return
		case fn := <-r.cmds:
			r.apply(fn)
		}
	}
}

// apply runs one command with panic containment: a failure in one handler is
// logged and must never tear down the shared dispatch loop.
func (r *Relay) apply(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Recovered from relay handler panic", "panic", rec)
		}
	}()
	fn()
}

func (r *Relay) dispatch(fn func()) {
	select {
	case r.cmds <- fn:
	case <-r.done:
	}
}

// query runs fn on the dispatch goroutine and returns its result, so reads
// of the membership maps are serialized with mutations.
func query[T any](r *Relay, fn func() T) T {
	reply := make(chan T, 1)
	r.dispatch(func() { reply <- fn() })
	select {
	case v := <-reply:
		return v
	case <-r.done:
		var zero T
		return zero
	}
}

// HandleOpen registers a freshly accepted connection with an empty room
// membership. A reconnecting client arrives here as an entirely new
// connection and has to re-issue all of its joins.
func (r *Relay) HandleOpen(conn Conn) {
	connID := conn.ID()
	r.dispatch(func() {
		r.registry.Register(connID)
		slog.Info("Connection registered", "connectionID", connID, "connections", r.registry.Len())
	})
	r.publishLifecycle(ClientConnectedEvent.Name(), func(ctx context.Context) error {
		return pubsub.Publish(ctx, r.publisher, ClientConnectedEvent, ClientConnected{ConnectionID: connID})
	})
}

// HandleClose purges every room membership of the connection. Close may be
// signaled through multiple code paths; only the first call does any work.
func (r *Relay) HandleClose(connID string) {
	r.dispatch(func() {
		if !r.registry.Known(connID) {
			return
		}
		rooms := r.registry.Unregister(connID)
		for _, room := range rooms {
			r.router.Leave(room, connID)
		}
		slog.Info("Connection unregistered", "connectionID", connID, "rooms_left", len(rooms), "connections", r.registry.Len())
		r.publishLifecycle(ClientDisconnectedEvent.Name(), func(ctx context.Context) error {
			return pubsub.Publish(ctx, r.publisher, ClientDisconnectedEvent, ClientDisconnected{ConnectionID: connID})
		})
	})
}

// HandleInbound processes one frame read off a client connection. Malformed
// frames are dropped and logged; they never disturb other connections.
func (r *Relay) HandleInbound(conn Conn, raw []byte) {
	r.dispatch(func() {
		frame, err := decodeFrame(raw)
		if err != nil {
			slog.Warn("Dropping malformed frame", "connectionID", conn.ID(), "error", err)
			return
		}
		if !r.registry.Known(conn.ID()) {
			// A frame raced the connection's close; membership must not resurrect.
			slog.Debug("Dropping frame from unknown connection", "connectionID", conn.ID(), "event", frame.Event)
			return
		}

		switch frame.Event {
		case EventJoinUserRoom:
			r.handleJoinUserRoom(conn, frame.Data)
		case EventJoinChat:
			r.handleJoinChat(conn, frame.Data)
		case EventLeaveChat:
			r.handleLeaveChat(conn, frame.Data)
		case EventTypingStart:
			r.handleTypingStart(conn, frame.Data)
		case EventTypingStop:
			r.handleTypingStop(conn, frame.Data)
		default:
			slog.Warn("Dropping frame with unknown event", "connectionID", conn.ID(), "event", frame.Event)
		}
	})
}

func (r *Relay) handleJoinUserRoom(conn Conn, data json.RawMessage) {
	var p joinUserRoomPayload
	if err := r.decodePayload(data, &p); err != nil {
		slog.Warn("Dropping join_user_room frame", "connectionID", conn.ID(), "error", err)
		return
	}
	r.join(conn, UserRoom(p.UserID))
}

func (r *Relay) handleJoinChat(conn Conn, data json.RawMessage) {
	var p chatRoomPayload
	if err := r.decodePayload(data, &p); err != nil {
		slog.Warn("Dropping join_chat frame", "connectionID", conn.ID(), "error", err)
		return
	}
	r.join(conn, ChatRoom(p.ChatID))
}

func (r *Relay) handleLeaveChat(conn Conn, data json.RawMessage) {
	var p chatRoomPayload
	if err := r.decodePayload(data, &p); err != nil {
		slog.Warn("Dropping leave_chat frame", "connectionID", conn.ID(), "error", err)
		return
	}
	r.leave(conn.ID(), ChatRoom(p.ChatID))
}

func (r *Relay) handleTypingStart(conn Conn, data json.RawMessage) {
	var p typingStartPayload
	if err := r.decodePayload(data, &p); err != nil {
		slog.Warn("Dropping typing_start frame", "connectionID", conn.ID(), "error", err)
		return
	}
	event := Event{Name: EventUserTyping, Data: TypingPayload{UserID: p.UserID, UserName: p.UserName}}
	r.router.Broadcast(ChatRoom(p.ChatID), event, conn.ID())
}

func (r *Relay) handleTypingStop(conn Conn, data json.RawMessage) {
	var p typingStopPayload
	if err := r.decodePayload(data, &p); err != nil {
		slog.Warn("Dropping typing_stop frame", "connectionID", conn.ID(), "error", err)
		return
	}
	event := Event{Name: EventUserStoppedTyping, Data: TypingPayload{UserID: p.UserID}}
	r.router.Broadcast(ChatRoom(p.ChatID), event, conn.ID())
}

// join and leave keep the registry and router in lockstep; they are the only
// places membership changes outside of HandleClose.
func (r *Relay) join(conn Conn, room RoomKey) {
	r.router.Join(room, conn)
	r.registry.RecordJoin(conn.ID(), room)
	slog.Debug("Connection joined room", "connectionID", conn.ID(), "room", room.String())
}

func (r *Relay) leave(connID string, room RoomKey) {
	r.router.Leave(room, connID)
	r.registry.RecordLeave(connID, room)
	slog.Debug("Connection left room", "connectionID", connID, "room", room.String())
}

// PublishNewMessage fans a persisted chat message out to every participant's
// user room. The message has already been committed by the caller, so a
// failed delivery here costs a realtime notification, never data.
func (r *Relay) PublishNewMessage(chatID string, message json.RawMessage, participantUserIDs []string) {
	r.dispatch(func() {
		event := Event{Name: EventNewMessage, Data: NewMessagePayload{ChatID: chatID, Message: message}}
		notified := 0
		for _, userID := range participantUserIDs {
			notified += r.router.Broadcast(UserRoom(userID), event)
		}
		slog.Debug("Fanned out new message", "chatID", chatID, "participants", len(participantUserIDs), "notified", notified)
	})
}

// PublishMessagesRead tells every other participant that readerUserID has
// read the chat.
func (r *Relay) PublishMessagesRead(chatID, readerUserID string, otherParticipantUserIDs []string) {
	r.dispatch(func() {
		event := Event{Name: EventMessagesRead, Data: MessagesReadPayload{ChatID: chatID, ReadBy: readerUserID}}
		notified := 0
		for _, userID := range otherParticipantUserIDs {
			notified += r.router.Broadcast(UserRoom(userID), event)
		}
		slog.Debug("Fanned out read receipt", "chatID", chatID, "readBy", readerUserID, "notified", notified)
	})
}

func (r *Relay) decodePayload(data json.RawMessage, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return err
	}
	return r.validate.Struct(dst)
}

func (r *Relay) publishLifecycle(topic string, publish func(context.Context) error) {
	if r.publisher == nil {
		return
	}
	go func() {
		if err := publish(context.Background()); err != nil {
			slog.Error("Failed to publish lifecycle event", "topic", topic, "error", err)
		}
	}()
}

// Stats is a point-in-time view of the relay's load.
type Stats struct {
	Connections int `json:"connections"`
	Rooms       int `json:"rooms"`
}

// CurrentStats reports connection and room counts.
func (r *Relay) CurrentStats() Stats {
	return query(r, func() Stats {
		return Stats{Connections: r.registry.Len(), Rooms: r.router.Len()}
	})
}

// RoomsOf returns the rooms the connection has joined, serialized with the
// dispatch loop.
func (r *Relay) RoomsOf(connID string) []RoomKey {
	return query(r, func() []RoomKey { return r.registry.Rooms(connID) })
}

// Members returns the connection IDs currently in the room, serialized with
// the dispatch loop.
func (r *Relay) Members(room RoomKey) []string {
	return query(r, func() []string { return r.router.Members(room) })
}
