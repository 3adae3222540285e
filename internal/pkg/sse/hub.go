package sse

import (
	"sync"
)

// Event is a notification delivered to one recipient's open streams.
type Event struct {
	RecipientID string
	Name        string
	Data        interface{}
}

// Hub fans events out to per-recipient subscriber channels.
type Hub struct {
	mu          sync.RWMutex
	bufferSize  int
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a hub whose subscriber channels hold bufferSize events.
// Publishing never blocks: events for a full channel are dropped.
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 10
	}
	return &Hub{
		bufferSize:  bufferSize,
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new stream for a recipient and returns the event channel and cleanup function
func (h *Hub) Subscribe(recipientID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)

	if h.subscribers[recipientID] == nil {
		h.subscribers[recipientID] = make(map[chan Event]struct{})
	}
	h.subscribers[recipientID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[recipientID], ch)
			close(ch)
			if len(h.subscribers[recipientID]) == 0 {
				delete(h.subscribers, recipientID)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all streams of event.RecipientID.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[event.RecipientID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishToMany sends the same event to several recipients, once each.
func (h *Hub) PublishToMany(recipientIDs []string, name string, data interface{}) {
	seen := make(map[string]struct{}, len(recipientIDs))
	for _, id := range recipientIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		h.Publish(Event{RecipientID: id, Name: name, Data: data})
	}
}

// SubscriberCount returns the number of open streams for a recipient
func (h *Hub) SubscriberCount(recipientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[recipientID])
}
