package realtime

import (
	"fmt"
	"testing"
	"time"

	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/domain"
)

func TestPublishReachesSessionSubscribers(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("session-1")
	defer sub.Unsubscribe()
	other := hub.Subscribe("session-2")
	defer other.Unsubscribe()

	hub.Publish(domain.ChatMessage{ID: "m-1", SessionID: "session-1", Message: "hi"})

	select {
	case evt := <-sub.C:
		if evt.Message.ID != "m-1" {
			t.Errorf("got message %q, want m-1", evt.Message.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive event")
	}

	select {
	case evt := <-other.C:
		t.Errorf("other session received %q, want nothing", evt.Message.ID)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("session-1")
	sub.Unsubscribe()

	if _, ok := <-sub.C; ok {
		t.Error("channel still open after Unsubscribe")
	}
	if n := hub.SubscriberCount("session-1"); n != 0 {
		t.Errorf("SubscriberCount = %d, want 0", n)
	}

	// Publishing after unsubscribe must not panic.
	hub.Publish(domain.ChatMessage{ID: "m-1", SessionID: "session-1"})
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("session-1")
	defer sub.Unsubscribe()

	// Overfill the buffer without draining; extra events are dropped, not
	// blocking the publisher.
	for i := 0; i < config.RealtimeBuffer+10; i++ {
		hub.Publish(domain.ChatMessage{ID: fmt.Sprintf("m-%d", i), SessionID: "session-1"})
	}

	received := 0
	for {
		select {
		case <-sub.C:
			received++
			continue
		default:
		}
		break
	}
	if received != config.RealtimeBuffer {
		t.Errorf("received = %d, want buffer size %d", received, config.RealtimeBuffer)
	}
}

func TestSubscriberCount(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("session-1")
	b := hub.Subscribe("session-1")

	if n := hub.SubscriberCount("session-1"); n != 2 {
		t.Errorf("SubscriberCount = %d, want 2", n)
	}
	a.Unsubscribe()
	if n := hub.SubscriberCount("session-1"); n != 1 {
		t.Errorf("SubscriberCount after one unsubscribe = %d, want 1", n)
	}
	b.Unsubscribe()
	if n := hub.SubscriberCount("session-1"); n != 0 {
		t.Errorf("SubscriberCount after both = %d, want 0", n)
	}
}
