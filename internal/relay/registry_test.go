package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterIsIdempotent(t *testing.T) {
	r := NewRegistry()

	r.Register("c1")
	r.RecordJoin("c1", UserRoom("u1"))

	// A duplicate register must not wipe existing membership.
	r.Register("c1")

	assert.Equal(t, []RoomKey{UserRoom("u1")}, r.Rooms("c1"))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_UnregisterReturnsRoomsThenEmpty(t *testing.T) {
	r := NewRegistry()
	r.Register("c1")
	r.RecordJoin("c1", UserRoom("u1"))
	r.RecordJoin("c1", ChatRoom("chat1"))

	rooms := r.Unregister("c1")
	require.Len(t, rooms, 2)
	assert.ElementsMatch(t, []RoomKey{UserRoom("u1"), ChatRoom("chat1")}, rooms)
	assert.False(t, r.Known("c1"))

	// Second call is already-clean state, not an error.
	assert.Empty(t, r.Unregister("c1"))
}

func TestRegistry_UnknownConnectionMutationsAreNoOps(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Registry)
	}{
		{
			name:   "join after disconnect must not resurrect state",
			mutate: func(r *Registry) { r.RecordJoin("ghost", ChatRoom("chat1")) },
		},
		{
			name:   "leave for unknown connection",
			mutate: func(r *Registry) { r.RecordLeave("ghost", ChatRoom("chat1")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			tt.mutate(r)

			assert.False(t, r.Known("ghost"))
			assert.Empty(t, r.Rooms("ghost"))
			assert.Equal(t, 0, r.Len())
		})
	}
}

func TestRegistry_RecordLeave(t *testing.T) {
	r := NewRegistry()
	r.Register("c1")
	r.RecordJoin("c1", ChatRoom("chat1"))
	r.RecordJoin("c1", UserRoom("u1"))

	r.RecordLeave("c1", ChatRoom("chat1"))

	assert.Equal(t, []RoomKey{UserRoom("u1")}, r.Rooms("c1"))

	// Leaving a room twice stays clean.
	r.RecordLeave("c1", ChatRoom("chat1"))
	assert.Equal(t, []RoomKey{UserRoom("u1")}, r.Rooms("c1"))
}
