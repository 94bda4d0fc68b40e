package hub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freddyb/standup/internal/hub"
)

func TestHubBroadcast(t *testing.T) {
	h := hub.NewHub()
	go h.Run()

	first := &hub.Subscriber{Send: make(chan []byte, 1)}
	second := &hub.Subscriber{Send: make(chan []byte, 1)}
	h.Register <- first
	h.Register <- second

	h.Broadcast <- []byte("fragment")

	for _, subscriber := range []*hub.Subscriber{first, second} {
		select {
		case msg := <-subscriber.Send:
			assert.Equal(t, []byte("fragment"), msg)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for broadcast")
		}
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := hub.NewHub()
	go h.Run()

	subscriber := &hub.Subscriber{Send: make(chan []byte, 1)}
	h.Register <- subscriber
	h.Unregister <- subscriber

	select {
	case _, ok := <-subscriber.Send:
		require.False(t, ok, "send channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	h := hub.NewHub()
	go h.Run()

	// Buffer of one, never drained: the second broadcast overflows it.
	slow := &hub.Subscriber{Send: make(chan []byte, 1)}
	h.Register <- slow

	h.Broadcast <- []byte("one")
	h.Broadcast <- []byte("two")

	// The subscriber got the first message, then was dropped.
	msg := <-slow.Send
	assert.Equal(t, []byte("one"), msg)
	select {
	case _, ok := <-slow.Send:
		assert.False(t, ok, "send channel should be closed after dropping")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for drop")
	}
}
