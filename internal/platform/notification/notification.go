// Package notification records the outcome of data mutations as events,
// replacing fire-and-forget toast calls with values the caller (and the API)
// can observe.
package notification

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Severity classifies an event for presentation.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Event describes one completed mutation.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// Recorder receives mutation events. Services call it after every
// successful mutation.
type Recorder interface {
	Record(entity, action, message string, severity Severity) Event
}

// Hub is an in-memory Recorder that retains the most recent events.
type Hub struct {
	mu     sync.RWMutex
	events []Event
	limit  int
}

// NewHub creates a hub retaining up to limit events (oldest dropped first).
func NewHub(limit int) *Hub {
	if limit <= 0 {
		limit = 200
	}
	return &Hub{limit: limit}
}

func (h *Hub) Record(entity, action, message string, severity Severity) Event {
	evt := Event{
		ID:        uuid.New(),
		Entity:    entity,
		Action:    action,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, evt)
	if len(h.events) > h.limit {
		h.events = h.events[len(h.events)-h.limit:]
	}
	return evt
}

// Recent returns up to n events, newest first.
func (h *Hub) Recent(n int) []Event {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n <= 0 || n > len(h.events) {
		n = len(h.events)
	}
	out := make([]Event, 0, n)
	for i := len(h.events) - 1; i >= len(h.events)-n; i-- {
		out = append(out, h.events[i])
	}
	return out
}

// RegisterRoutes exposes the event feed.
func (h *Hub) RegisterRoutes(api *echo.Group) {
	api.GET("/notifications", func(c echo.Context) error {
		return c.JSON(http.StatusOK, h.Recent(50))
	})
}

// Discard is a Recorder that drops every event. Useful in tests and in
// command-line contexts where no feed is wanted.
type Discard struct{}

func (Discard) Record(entity, action, message string, severity Severity) Event {
	return Event{Entity: entity, Action: action, Message: message, Severity: severity}
}
