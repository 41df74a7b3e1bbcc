package dto

import (
	"time"

	"github.com/blockbuddy/lead-console/internal/domain"
)

// StartChatRequest payload.
type StartChatRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StartChatResponse result.
type StartChatResponse struct {
	Success bool                `json:"success"`
	ChatID  string              `json:"chatId,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// SessionResponse is a resumable session identity.
type SessionResponse struct {
	ChatID string `json:"chatId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// SendMessageRequest payload.
type SendMessageRequest struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// SendMessageResponse result.
type SendMessageResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// MessageResponse is one chat message.
type MessageResponse struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// FromMessage maps a domain message.
func FromMessage(msg *domain.ChatMessage) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		Sender:    string(msg.Sender),
		Text:      msg.Text,
		Timestamp: msg.CreatedAt,
	}
}

// FromMessages maps a slice preserving order.
func FromMessages(msgs []domain.ChatMessage) []MessageResponse {
	items := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, FromMessage(&msgs[i]))
	}
	return items
}
