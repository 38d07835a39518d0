// Package watch implements an in-process fan-out of record snapshots.
// Every subscriber of an owner receives the full snapshot published after
// each mutation of that owner's records.
package watch

import (
	"sync"

	"github.com/furari-app/furari/internal/api"
)

// subscriberBuffer bounds how many unread snapshots a slow subscriber may
// hold before newer ones replace older ones.
const subscriberBuffer = 8

// Hub tracks snapshot subscribers keyed by owner id.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan api.Snapshot]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan api.Snapshot]struct{})}
}

// Subscribe registers a new snapshot channel for ownerID. The returned
// cancel function removes the subscription and closes the channel; it is
// safe to call more than once.
func (h *Hub) Subscribe(ownerID string) (<-chan api.Snapshot, func()) {
	ch := make(chan api.Snapshot, subscriberBuffer)

	h.mu.Lock()
	set, ok := h.subs[ownerID]
	if !ok {
		set = make(map[chan api.Snapshot]struct{})
		h.subs[ownerID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[ownerID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, ownerID)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Publish delivers snapshot to every subscriber of ownerID. When a
// subscriber's buffer is full its oldest snapshot is dropped; only the
// latest state matters to watchers.
func (h *Hub) Publish(ownerID string, snapshot api.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[ownerID] {
		for {
			select {
			case ch <- snapshot:
			default:
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// SubscriberCount reports how many channels are registered for ownerID.
func (h *Hub) SubscriberCount(ownerID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[ownerID])
}
