package domain

import "time"

// MessageRole indicates who authored a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "USER"
	RoleAssistant MessageRole = "ASSISTANT"
	RoleSystem    MessageRole = "SYSTEM"
)

// Chat is a single conversation thread owned by one identity. Ownership is
// keyed by email so that guest sessions, which have no User row, can still
// hold chats.
type Chat struct {
	ID         string
	OwnerEmail string
	Title      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Message is one turn inside a chat thread.
type Message struct {
	ID        string
	ChatID    string
	Role      MessageRole
	Body      string
	CreatedAt time.Time
}
