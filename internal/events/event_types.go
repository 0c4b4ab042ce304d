package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventUserLoggedIn       EventType = "user_logged_in"
	EventGuestSessionIssued EventType = "guest_session_issued"
	EventChatCreated        EventType = "chat_created"
	EventMessageAdded       EventType = "message_added"
)

// Event represents a domain event emitted by services. Subject carries the
// acting identity's email; guest identities appear with their guest email.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// ChatCreatedPayload payload.
type ChatCreatedPayload struct {
	ChatID string `json:"chat_id"`
	Title  string `json:"title"`
}

// MessageAddedPayload payload.
type MessageAddedPayload struct {
	ChatID      string `json:"chat_id"`
	MessageID   string `json:"message_id"`
	Role        string `json:"role"`
	BodyPreview string `json:"body_preview"`
}
