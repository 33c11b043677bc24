package proxy

import (
	"testing"
	"time"

	"github.com/voluntree-lab/backend/internal/domain/notification/event"

	"github.com/stretchr/testify/require"
)

func TestUserHub_SendDoesNotBlockOnFullSession(t *testing.T) {
	hub := NewUserHub("member1")
	slow := NewUserSession("member1")
	fast := NewUserSession("member1")
	slow.Join(hub)
	fast.Join(hub)

	ev := event.New(&event.NotificationEvent{}, event.Metadata{To: "member1"})
	for i := 0; i < cap(slow.C); i++ {
		slow.C <- ev
	}

	// A stalled session must not hold up delivery to its siblings.
	done := make(chan struct{})
	go func() {
		hub.Send(ev)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a full session buffer")
	}

	require.Len(t, slow.C, cap(slow.C))
	require.Len(t, fast.C, 1)
}

func TestUserHub_RegisterUnregister(t *testing.T) {
	hub := NewUserHub("member1")
	require.True(t, hub.IsEmpty())

	session := NewUserSession("member1")
	session.Join(hub)
	require.False(t, hub.IsEmpty())

	// Joining twice keeps a single registration.
	session.Join(hub)
	session.Leave()
	require.True(t, hub.IsEmpty())
}
