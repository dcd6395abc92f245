// Package realtime fans chat events out to session viewers, standing in for
// the hosted change feed the frontend used to subscribe to.
package realtime

import (
	"log/slog"
	"sync"

	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/domain"
)

// Event is a new-row notification on a session's chat stream.
type Event struct {
	Message domain.ChatMessage
}

// Subscription is one viewer's feed for a single session.
type Subscription struct {
	C chan Event

	hub       *Hub
	sessionID string
}

// Hub is an in-memory pub/sub broker keyed by session id. Publishing never
// blocks: events to subscribers with a full buffer are dropped, matching the
// at-most-once delivery of the change feed it replaces.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

// Subscribe registers a viewer on a session's stream. The caller must
// Unsubscribe when done.
func (h *Hub) Subscribe(sessionID string) *Subscription {
	sub := &Subscription{
		C:         make(chan Event, config.RealtimeBuffer),
		hub:       h,
		sessionID: sessionID,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[*Subscription]struct{})
	}
	h.subs[sessionID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Safe to call
// once per subscription.
func (s *Subscription) Unsubscribe() {
	h := s.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[s.sessionID]; ok {
		if _, ok := set[s]; ok {
			delete(set, s)
			close(s.C)
			if len(set) == 0 {
				delete(h.subs, s.sessionID)
			}
		}
	}
}

// Publish delivers the message to every subscriber of its session.
func (h *Hub) Publish(msg domain.ChatMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[msg.SessionID] {
		select {
		case sub.C <- Event{Message: msg}:
		default:
			slog.Warn("realtime subscriber buffer full, dropping event",
				"session_id", msg.SessionID, "message_id", msg.ID)
		}
	}
}

// SubscriberCount reports how many viewers a session has.
func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}
