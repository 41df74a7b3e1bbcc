package domain

import "time"

// MessageSender indicates which side of a chat wrote a message.
type MessageSender string

const (
	SenderUser  MessageSender = "user"
	SenderAgent MessageSender = "agent"
)

// IsValid reports whether s is a known sender.
func (s MessageSender) IsValid() bool {
	return s == SenderUser || s == SenderAgent
}

// ChatMessage is one entry in a request's ordered message sub-list.
// Messages are append-only and ordered by their server timestamp.
type ChatMessage struct {
	ID        string
	RequestID string
	Sender    MessageSender
	Text      string
	CreatedAt time.Time
}
