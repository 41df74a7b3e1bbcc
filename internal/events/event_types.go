package events

import (
	"time"

	"github.com/blockbuddy/lead-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventRequestNotesUpdated  EventType = "request_notes_updated"
	EventChatSessionStarted   EventType = "chat_session_started"
	EventChatMessageAdded     EventType = "chat_message_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	Kind    domain.RequestKind `json:"kind"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	Message string             `json:"message"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus domain.Status `json:"old_status"`
	NewStatus domain.Status `json:"new_status"`
	Version   int64         `json:"version"`
}

// RequestNotesUpdatedPayload payload.
type RequestNotesUpdatedPayload struct {
	Version int64 `json:"version"`
}

// ChatSessionStartedPayload payload.
type ChatSessionStartedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChatMessageAddedPayload payload.
type ChatMessageAddedPayload struct {
	MessageID string               `json:"message_id"`
	Sender    domain.MessageSender `json:"sender"`
	Text      string               `json:"text"`
}
