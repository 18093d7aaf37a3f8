package portalauth

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// EventType names a core-state notification emitted to the collaborator
// layer.
type EventType string

const (
	// EventRoleChanged is an exported constant or variable used by the session core.
	EventRoleChanged EventType = "role_changed"
	// EventIdentityChanged is an exported constant or variable used by the session core.
	EventIdentityChanged EventType = "identity_changed"
	// EventLoginSuccess is an exported constant or variable used by the session core.
	EventLoginSuccess EventType = "login_success"
	// EventLoginFailure is an exported constant or variable used by the session core.
	EventLoginFailure EventType = "login_failure"
	// EventResetRequested is an exported constant or variable used by the session core.
	EventResetRequested EventType = "reset_requested"
	// EventResetFailure is an exported constant or variable used by the session core.
	EventResetFailure EventType = "reset_failure"
	// EventProfileSynced is an exported constant or variable used by the session core.
	EventProfileSynced EventType = "profile_synced"
	// EventProfileSyncFallback is an exported constant or variable used by the session core.
	EventProfileSyncFallback EventType = "profile_sync_fallback"
	// EventSessionRestored is an exported constant or variable used by the session core.
	EventSessionRestored EventType = "session_restored"
	// EventSessionRejected is an exported constant or variable used by the session core.
	EventSessionRejected EventType = "session_rejected"
	// EventLogout is an exported constant or variable used by the session core.
	EventLogout EventType = "logout"
)

// Event is the notification record delivered to an [EventSink]. AttemptID
// correlates the events of one submitted login with the profile sync it
// triggers.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"event_type"`
	Role      Role      `json:"role,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	AttemptID string    `json:"attempt_id,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// EventSink receives core-state notifications. Implementations must be safe
// for concurrent use; Emit is called from the dispatcher goroutine.
type EventSink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink discards every event.
type NoOpSink struct{}

// Emit describes the emit operation and its observable behavior.
func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink delivers events on a buffered channel for the host page's event
// loop to consume.
type ChannelSink struct {
	events chan Event
}

// NewChannelSink describes the newchannelsink operation and its observable behavior.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan Event, buffer),
	}
}

// Emit describes the emit operation and its observable behavior.
func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events describes the events operation and its observable behavior.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// JSONWriterSink writes one JSON event per line to an io.Writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink describes the newjsonwritersink operation and its observable behavior.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit describes the emit operation and its observable behavior.
func (s *JSONWriterSink) Emit(ctx context.Context, event Event) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
