package ws

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentboard/internal/domain"
)

// Tests read client.Send directly instead of starting WritePump, so no
// real socket is needed.

func recvOne(t *testing.T, client *Client) envelope {
	t.Helper()
	select {
	case payload := <-client.Send:
		var env envelope
		require.NoError(t, json.Unmarshal(payload, &env))
		return env
	default:
		t.Fatal("expected a buffered payload")
		return envelope{}
	}
}

func assertEmpty(t *testing.T, client *Client) {
	t.Helper()
	select {
	case payload := <-client.Send:
		t.Fatalf("expected no payload, got %s", payload)
	default:
	}
}

func TestHub_PushToUser(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	otherID := uuid.New()

	first := hub.Register(userID, domain.RoleJobSeeker, &websocket.Conn{})
	second := hub.Register(userID, domain.RoleJobSeeker, &websocket.Conn{})
	other := hub.Register(otherID, domain.RoleJobSeeker, &websocket.Conn{})

	hub.PushToUser(userID, domain.EventReceiveNotification, map[string]string{"title": "hi"})

	env := recvOne(t, first)
	assert.Equal(t, domain.EventReceiveNotification, env.Event)
	recvOne(t, second)
	assertEmpty(t, other)
}

func TestHub_PushToUser_NoConnectionsIsNoOp(t *testing.T) {
	hub := NewHub()

	hub.PushToUser(uuid.New(), domain.EventReceiveMessage, map[string]string{"content": "hello"})
}

func TestHub_PushToRole(t *testing.T) {
	hub := NewHub()

	seeker := hub.Register(uuid.New(), domain.RoleJobSeeker, &websocket.Conn{})
	employer := hub.Register(uuid.New(), domain.RoleEmployer, &websocket.Conn{})

	hub.PushToRole(domain.RoleJobSeeker, domain.EventReceiveNotification, map[string]string{"title": "new job"})

	recvOne(t, seeker)
	assertEmpty(t, employer)
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()

	seeker := hub.Register(uuid.New(), domain.RoleJobSeeker, &websocket.Conn{})
	employer := hub.Register(uuid.New(), domain.RoleEmployer, &websocket.Conn{})
	admin := hub.Register(uuid.New(), domain.RoleAdmin, &websocket.Conn{})

	hub.Broadcast(domain.EventReceiveNotification, map[string]string{"title": "maintenance"})

	recvOne(t, seeker)
	recvOne(t, employer)
	recvOne(t, admin)
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	conn := &websocket.Conn{}

	client := hub.Register(userID, domain.RoleJobSeeker, conn)
	assert.Equal(t, 1, hub.ConnectionCount(userID))

	hub.Unregister(userID, domain.RoleJobSeeker, conn)
	assert.Equal(t, 0, hub.ConnectionCount(userID))

	// Send is closed so WritePump exits.
	_, open := <-client.Send
	assert.False(t, open)

	// Pushing after unregister reaches nobody.
	hub.PushToUser(userID, domain.EventReceiveNotification, map[string]string{"title": "late"})
}

func TestHub_Unregister_KeepsOtherConnections(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	first := &websocket.Conn{}
	second := &websocket.Conn{}

	hub.Register(userID, domain.RoleJobSeeker, first)
	remaining := hub.Register(userID, domain.RoleJobSeeker, second)

	hub.Unregister(userID, domain.RoleJobSeeker, first)
	assert.Equal(t, 1, hub.ConnectionCount(userID))

	hub.PushToUser(userID, domain.EventReceiveMessage, map[string]string{"content": "still here"})
	recvOne(t, remaining)
}

func TestHub_SlowConsumerDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	client := hub.Register(userID, domain.RoleJobSeeker, &websocket.Conn{})

	for i := 0; i < sendBufferSize+10; i++ {
		hub.PushToUser(userID, domain.EventReceiveNotification, map[string]int{"n": i})
	}

	assert.Len(t, client.Send, sendBufferSize)
}

func TestHub_MarshalFailureIsDropped(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	client := hub.Register(userID, domain.RoleJobSeeker, &websocket.Conn{})

	hub.PushToUser(userID, domain.EventReceiveNotification, make(chan int))

	assertEmpty(t, client)
}
