package relay

import "github.com/samber/lo"

// Registry tracks which rooms each live connection has joined. It is the
// forward half of the membership state; Router holds the reverse mapping.
// Both are owned by the relay's single dispatch goroutine, so no locking
// happens here.
type Registry struct {
	rooms map[string]map[RoomKey]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[RoomKey]struct{}),
	}
}

// Register creates an empty membership set for a new connection.
// Registering an already-known connection is a no-op.
func (r *Registry) Register(connID string) {
	if _, ok := r.rooms[connID]; ok {
		return
	}
	r.rooms[connID] = make(map[RoomKey]struct{})
}

// Unregister removes the connection and returns the rooms it was in, for the
// caller to evict it from the Router. Idempotent: a second call for the same
// connection returns an empty slice.
func (r *Registry) Unregister(connID string) []RoomKey {
	joined, ok := r.rooms[connID]
	if !ok {
		return nil
	}
	delete(r.rooms, connID)
	return lo.Keys(joined)
}

// RecordJoin adds a room to the connection's membership set. Unknown
// connections are ignored so a late join after disconnect cannot resurrect
// state.
func (r *Registry) RecordJoin(connID string, room RoomKey) {
	if joined, ok := r.rooms[connID]; ok {
		joined[room] = struct{}{}
	}
}

// RecordLeave removes a room from the connection's membership set. Unknown
// connections or rooms are already-clean state, not errors.
func (r *Registry) RecordLeave(connID string, room RoomKey) {
	if joined, ok := r.rooms[connID]; ok {
		delete(joined, room)
	}
}

// Known reports whether the connection is currently registered.
func (r *Registry) Known(connID string) bool {
	_, ok := r.rooms[connID]
	return ok
}

// Rooms returns the rooms the connection has joined.
func (r *Registry) Rooms(connID string) []RoomKey {
	return lo.Keys(r.rooms[connID])
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	return len(r.rooms)
}
