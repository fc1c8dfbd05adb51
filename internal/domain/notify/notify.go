// Package notify carries user-facing notification intents emitted by the
// store. Intents are pure data; the presentation layer decides how and
// whether to display them.
package notify

import (
	"sync"
	"time"

	"stokpano/internal/core/id"
)

// Level hints at how the presentation layer should style the intent.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Undo references a just-archived entity so the UI can offer a restore action.
type Undo struct {
	Entity string `json:"entity"` // "list" or "folder"
	ID     id.ID  `json:"id"`
}

// Notification is a single intent.
type Notification struct {
	Level       Level     `json:"level"`
	Message     string    `json:"message"`
	Description string    `json:"description,omitempty"`
	Undo        *Undo     `json:"undo,omitempty"`
	At          time.Time `json:"at"`
}

// Handler receives intents as they are emitted.
type Handler func(Notification)

// Hub fans intents out to subscribed handlers and retains the most recent
// ones in a ring buffer, so intents emitted while nobody listens are not
// lost (until the ring wraps).
type Hub struct {
	mu       sync.Mutex
	ring     []Notification
	next     int
	filled   bool
	handlers []Handler
}

// NewHub creates a Hub retaining up to capacity intents.
func NewHub(capacity int) *Hub {
	if capacity <= 0 {
		capacity = 100
	}
	return &Hub{ring: make([]Notification, capacity)}
}

// Subscribe registers a handler. Handlers run synchronously on the emitting
// goroutine and must not block.
func (h *Hub) Subscribe(fn Handler) {
	h.mu.Lock()
	h.handlers = append(h.handlers, fn)
	h.mu.Unlock()
}

// Emit records the intent and fans it out.
func (h *Hub) Emit(n Notification) {
	h.mu.Lock()
	h.ring[h.next] = n
	h.next++
	if h.next == len(h.ring) {
		h.next = 0
		h.filled = true
	}
	handlers := append([]Handler(nil), h.handlers...)
	h.mu.Unlock()

	for _, fn := range handlers {
		fn(n)
	}
}

// Recent returns up to n retained intents, newest first.
func (h *Hub) Recent(n int) []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	size := h.next
	if h.filled {
		size = len(h.ring)
	}
	if n <= 0 || n > size {
		n = size
	}
	out := make([]Notification, 0, n)
	for i := 1; i <= n; i++ {
		idx := (h.next - i + len(h.ring)) % len(h.ring)
		out = append(out, h.ring[idx])
	}
	return out
}
