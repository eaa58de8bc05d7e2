package relay

import (
	"log/slog"

	"github.com/samber/lo"
)

// Router maps each room to its member connections and delivers events to
// them. Like Registry, it is owned by the relay's dispatch goroutine and is
// therefore unsynchronized.
type Router struct {
	rooms map[RoomKey]map[string]Conn
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		rooms: make(map[RoomKey]map[string]Conn),
	}
}

// Join adds the connection to the room's member set, creating the room on
// first join.
func (rt *Router) Join(room RoomKey, conn Conn) {
	members, ok := rt.rooms[room]
	if !ok {
		members = make(map[string]Conn)
		rt.rooms[room] = members
	}
	members[conn.ID()] = conn
}

// Leave removes the connection from the room. The room entry is dropped once
// its member set empties; empty rooms are harmless but there is no reason to
// keep them.
func (rt *Router) Leave(room RoomKey, connID string) {
	members, ok := rt.rooms[room]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(rt.rooms, room)
	}
}

// Broadcast delivers the event to every member of the room except the
// excluded connections, and returns how many members it reached. Delivery is
// fire-and-forget per connection: one failed send (buffer full, socket just
// closed) never aborts the rest of the fan-out and never reaches the caller
// as an error. Broadcasting to an unknown or empty room is a no-op with
// count 0.
func (rt *Router) Broadcast(room RoomKey, event Event, exclude ...string) int {
	members, ok := rt.rooms[room]
	if !ok {
		return 0
	}

	payload, err := event.Encode()
	if err != nil {
		slog.Error("Failed to encode event", "event", event.Name, "room", room.String(), "error", err)
		return 0
	}

	notified := 0
	for connID, conn := range members {
		if lo.Contains(exclude, connID) {
			continue
		}
		if err := conn.Send(payload); err != nil {
			slog.Warn("Dropping event for connection", "event", event.Name, "room", room.String(), "connectionID", connID, "error", err)
			continue
		}
		notified++
	}
	return notified
}

// Members returns the IDs of the room's current members.
func (rt *Router) Members(room RoomKey) []string {
	return lo.Keys(rt.rooms[room])
}

// Len returns the number of rooms with at least one member.
func (rt *Router) Len() int {
	return len(rt.rooms)
}
