package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishToSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("auth-1")
	defer cleanup()

	hub.Publish("auth-1", Event{Event: EventSnapshotRefreshed, Data: 42})
	hub.Publish("auth-2", Event{Event: EventSnapshotRefreshed})

	select {
	case ev := <-ch:
		assert.Equal(t, "auth-1", ev.UserID)
		assert.Equal(t, EventSnapshotRefreshed, ev.Event)
		assert.Equal(t, 42, ev.Data)
	default:
		t.Fatal("expected an event")
	}

	assert.Empty(t, ch)
}

func TestHub_FullBufferDrops(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("auth-1")
	defer cleanup()

	for i := 0; i < 25; i++ {
		hub.Publish("auth-1", Event{Event: EventPing})
	}
	assert.Len(t, ch, 10)
}

func TestHub_Cleanup(t *testing.T) {
	hub := NewHub()

	_, c1 := hub.Subscribe("auth-1")
	ch2, c2 := hub.Subscribe("auth-1")
	_, c3 := hub.Subscribe("auth-2")
	assert.Equal(t, 2, hub.SubscriberCount("auth-1"))
	assert.Equal(t, 3, hub.TotalSubscribers())

	c2()
	c2()
	_, open := <-ch2
	require.False(t, open)

	c1()
	c3()
	assert.Equal(t, 0, hub.SubscriberCount("auth-1"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}
