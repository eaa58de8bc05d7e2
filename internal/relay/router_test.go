package relay

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn records every payload the router delivers to it.
type fakeConn struct {
	id       string
	mu       sync.Mutex
	received [][]byte
	sendErr  error
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.received = append(f.received, payload)
	return nil
}

func (f *fakeConn) getReceived() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.received))
	copy(out, f.received)
	return out
}

func TestRouter_BroadcastFanOut(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(*Router) []*fakeConn
		room         RoomKey
		exclude      []string
		wantNotified int
		wantReceived map[string]int
	}{
		{
			name: "delivers to every member and counts them",
			setup: func(rt *Router) []*fakeConn {
				a, b, c := newFakeConn("a"), newFakeConn("b"), newFakeConn("c")
				rt.Join(ChatRoom("chat1"), a)
				rt.Join(ChatRoom("chat1"), b)
				rt.Join(ChatRoom("chat1"), c)
				return []*fakeConn{a, b, c}
			},
			room:         ChatRoom("chat1"),
			wantNotified: 3,
			wantReceived: map[string]int{"a": 1, "b": 1, "c": 1},
		},
		{
			name: "members of other rooms receive nothing",
			setup: func(rt *Router) []*fakeConn {
				a, b := newFakeConn("a"), newFakeConn("b")
				rt.Join(ChatRoom("chat1"), a)
				rt.Join(ChatRoom("chat2"), b)
				return []*fakeConn{a, b}
			},
			room:         ChatRoom("chat1"),
			wantNotified: 1,
			wantReceived: map[string]int{"a": 1, "b": 0},
		},
		{
			name: "excluded sender is skipped",
			setup: func(rt *Router) []*fakeConn {
				a, b := newFakeConn("a"), newFakeConn("b")
				rt.Join(ChatRoom("chat1"), a)
				rt.Join(ChatRoom("chat1"), b)
				return []*fakeConn{a, b}
			},
			room:         ChatRoom("chat1"),
			exclude:      []string{"a"},
			wantNotified: 1,
			wantReceived: map[string]int{"a": 0, "b": 1},
		},
		{
			name:         "unknown room is a silent no-op",
			setup:        func(rt *Router) []*fakeConn { return nil },
			room:         ChatRoom("nowhere"),
			wantNotified: 0,
			wantReceived: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := NewRouter()
			conns := tt.setup(rt)

			notified := rt.Broadcast(tt.room, Event{Name: EventNewMessage}, tt.exclude...)

			assert.Equal(t, tt.wantNotified, notified)
			for _, conn := range conns {
				assert.Len(t, conn.getReceived(), tt.wantReceived[conn.ID()], "connection %s", conn.ID())
			}
		})
	}
}

func TestRouter_BroadcastSurvivesFailedSend(t *testing.T) {
	rt := NewRouter()
	healthy1 := newFakeConn("h1")
	broken := newFakeConn("broken")
	broken.sendErr = errors.New("socket closed")
	healthy2 := newFakeConn("h2")

	rt.Join(ChatRoom("chat1"), healthy1)
	rt.Join(ChatRoom("chat1"), broken)
	rt.Join(ChatRoom("chat1"), healthy2)

	notified := rt.Broadcast(ChatRoom("chat1"), Event{Name: EventUserTyping})

	assert.Equal(t, 2, notified)
	assert.Len(t, healthy1.getReceived(), 1)
	assert.Len(t, healthy2.getReceived(), 1)
	assert.Empty(t, broken.getReceived())
}

func TestRouter_LeaveDropsEmptyRoom(t *testing.T) {
	rt := NewRouter()
	a := newFakeConn("a")
	b := newFakeConn("b")
	rt.Join(ChatRoom("chat1"), a)
	rt.Join(ChatRoom("chat1"), b)
	require.Equal(t, 1, rt.Len())

	rt.Leave(ChatRoom("chat1"), "a")
	assert.Equal(t, []string{"b"}, rt.Members(ChatRoom("chat1")))
	assert.Equal(t, 1, rt.Len())

	rt.Leave(ChatRoom("chat1"), "b")
	assert.Empty(t, rt.Members(ChatRoom("chat1")))
	assert.Equal(t, 0, rt.Len())

	// Leaving an unknown room or connection is already-clean state.
	rt.Leave(ChatRoom("chat1"), "b")
	rt.Leave(ChatRoom("nowhere"), "a")
}

func TestRouter_JoinIsIdempotentPerConnection(t *testing.T) {
	rt := NewRouter()
	a := newFakeConn("a")
	rt.Join(ChatRoom("chat1"), a)
	rt.Join(ChatRoom("chat1"), a)

	assert.Equal(t, []string{"a"}, rt.Members(ChatRoom("chat1")))
	assert.Equal(t, 1, rt.Broadcast(ChatRoom("chat1"), Event{Name: EventUserTyping}))
	assert.Len(t, a.getReceived(), 1)
}
