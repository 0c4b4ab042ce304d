package dto

import (
	"time"

	"github.com/fernwave/chat-service/internal/domain"
)

// SendMessageRequest posts one user turn. ChatID empty starts a new chat.
type SendMessageRequest struct {
	ChatID  string `json:"chat_id" form:"chat_id"`
	Message string `json:"message" form:"message"`
}

// ChatResponse is the wire form of a chat thread.
type ChatResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse is the wire form of one message.
type MessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatResponse maps a domain chat.
func NewChatResponse(chat *domain.Chat) ChatResponse {
	return ChatResponse{
		ID:        chat.ID,
		Title:     chat.Title,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}
}

// NewMessageResponse maps a domain message.
func NewMessageResponse(message *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		Role:      string(message.Role),
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
	}
}
