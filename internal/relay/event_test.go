package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalEventName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "hyphenated join user room", in: "join-user-room", want: EventJoinUserRoom},
		{name: "legacy authenticate", in: "authenticate", want: EventJoinUserRoom},
		{name: "hyphenated join chat", in: "join-chat", want: EventJoinChat},
		{name: "hyphenated leave chat", in: "leave-chat", want: EventLeaveChat},
		{name: "hyphenated typing start", in: "typing-start", want: EventTypingStart},
		{name: "hyphenated typing stop", in: "typing-stop", want: EventTypingStop},
		{name: "canonical passes through", in: EventJoinChat, want: EventJoinChat},
		{name: "unknown passes through", in: "no_such_event", want: "no_such_event"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalEventName(tt.in))
		})
	}
}

func TestDecodeFrame(t *testing.T) {
	t.Run("normalizes legacy dialect", func(t *testing.T) {
		frame, err := decodeFrame([]byte(`{"event":"typing-start","data":{"chatId":"c1"}}`))
		require.NoError(t, err)
		assert.Equal(t, EventTypingStart, frame.Event)
		assert.JSONEq(t, `{"chatId":"c1"}`, string(frame.Data))
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		_, err := decodeFrame([]byte(`{not json`))
		assert.Error(t, err)
	})

	t.Run("rejects missing event name", func(t *testing.T) {
		_, err := decodeFrame([]byte(`{"data":{"chatId":"c1"}}`))
		assert.Error(t, err)
	})
}

func TestEvent_Encode(t *testing.T) {
	payload, err := Event{
		Name: EventUserTyping,
		Data: TypingPayload{UserID: "u1", UserName: "Alice"},
	}.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"user_typing","data":{"userId":"u1","userName":"Alice"}}`, string(payload))
}

func TestEvent_EncodeOmitsEmptyUserName(t *testing.T) {
	payload, err := Event{
		Name: EventUserStoppedTyping,
		Data: TypingPayload{UserID: "u1"},
	}.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"user_stopped_typing","data":{"userId":"u1"}}`, string(payload))
}

func TestRoomKey(t *testing.T) {
	assert.Equal(t, "user:u1", UserRoom("u1").String())
	assert.Equal(t, "chat:c1", ChatRoom("c1").String())
	assert.NotEqual(t, UserRoom("x"), ChatRoom("x"), "namespaces must not collide")
	assert.True(t, RoomKey{}.IsZero())
	assert.False(t, UserRoom("u1").IsZero())
}
