package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blockbuddy/lead-console/internal/domain"
	"github.com/blockbuddy/lead-console/internal/events"
	"github.com/blockbuddy/lead-console/internal/repository"
	"github.com/blockbuddy/lead-console/internal/session"
	"github.com/blockbuddy/lead-console/internal/validate"
)

// SessionIdentityStore is the resumable-session side store.
type SessionIdentityStore interface {
	Save(ctx context.Context, id session.Identity) error
	Get(ctx context.Context, chatID string) (*session.Identity, error)
	Delete(ctx context.Context, chatID string) error
}

// ChatService manages live-chat sessions and their message sub-lists.
type ChatService struct {
	requests   repository.RequestRepository
	messages   repository.MessageRepository
	sessions   SessionIdentityStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// ChatDependencies bundles requirements for the chat service.
type ChatDependencies struct {
	RequestRepo repository.RequestRepository
	MessageRepo repository.MessageRepository
	Sessions    SessionIdentityStore
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// NewChatService constructs the service.
func NewChatService(deps ChatDependencies) *ChatService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ChatService{
		requests:   deps.RequestRepo,
		messages:   deps.MessageRepo,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        now,
	}
}

// StartSession opens (or, on an id collision, overwrites) a live-chat session
// and persists the greeting as a real agent message so every device sees the
// same thread.
func (s *ChatService) StartSession(ctx context.Context, input validate.ChatStartInput) (string, validate.FieldErrors, error) {
	if fe := validate.ChatStart(input); !fe.Empty() {
		return "", fe, nil
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	chatID := DeriveChatID(name, s.now())

	req := &domain.SupportRequest{
		ID:      chatID,
		Name:    name,
		Email:   email,
		Kind:    domain.KindLiveChat,
		Message: "Live chat session",
		Status:  domain.StatusRequested,
	}
	if err := s.requests.UpsertSession(ctx, req); err != nil {
		s.logger.Error("chat session start failed", zap.Error(err))
		return "", nil, err
	}

	greeting := &domain.ChatMessage{
		RequestID: chatID,
		Sender:    domain.SenderAgent,
		Text:      fmt.Sprintf("Hi %s! How can I help you today?", name),
	}
	if err := s.messages.Create(ctx, greeting); err != nil {
		// The session is usable without the greeting; log and continue.
		s.logger.Warn("greeting message not persisted", zap.String("chat_id", chatID), zap.Error(err))
	}

	if err := s.sessions.Save(ctx, session.Identity{ChatID: chatID, Name: name, Email: email}); err != nil {
		s.logger.Warn("session identity not saved", zap.String("chat_id", chatID), zap.Error(err))
	}

	s.publish(ctx, events.Event{
		Type:      events.EventChatSessionStarted,
		RequestID: chatID,
		Payload:   events.ChatSessionStartedPayload{Name: name, Email: email},
	})
	s.publish(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: chatID,
		Payload: events.RequestCreatedPayload{
			Kind:  domain.KindLiveChat,
			Name:  name,
			Email: email,
		},
	})
	return chatID, nil, nil
}

// Resume returns the stored identity for a chat id, or session.ErrNotFound.
func (s *ChatService) Resume(ctx context.Context, chatID string) (*session.Identity, error) {
	return s.sessions.Get(ctx, chatID)
}

// SendMessage appends a message to a session's sub-list.
func (s *ChatService) SendMessage(ctx context.Context, chatID string, input validate.ChatMessageInput) (*domain.ChatMessage, validate.FieldErrors, error) {
	if fe := validate.ChatMessage(input); !fe.Empty() {
		return nil, fe, nil
	}

	if _, err := s.requests.GetByID(ctx, chatID); err != nil {
		return nil, nil, err
	}

	msg := &domain.ChatMessage{
		RequestID: chatID,
		Sender:    domain.MessageSender(input.Sender),
		Text:      strings.TrimSpace(input.Text),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.Error("chat message send failed", zap.String("chat_id", chatID), zap.Error(err))
		return nil, nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventChatMessageAdded,
		RequestID: chatID,
		Payload: events.ChatMessageAddedPayload{
			MessageID: msg.ID,
			Sender:    msg.Sender,
			Text:      msg.Text,
		},
	})
	return msg, nil, nil
}

// ListMessages returns the session's messages ordered by server timestamp.
// The sort is re-applied here so ordering holds even when the store returns
// rows in insertion order.
func (s *ChatService) ListMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	msgs, err := s.messages.ListByRequest(ctx, chatID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

// EndSession discards the resumable identity. The request document and the
// remote message history are retained.
func (s *ChatService) EndSession(ctx context.Context, chatID string) error {
	return s.sessions.Delete(ctx, chatID)
}

func (s *ChatService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// DeriveChatID builds the session id from the sanitized visitor name and the
// start timestamp in milliseconds.
func DeriveChatID(name string, t time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	sanitized := strings.Trim(b.String(), "-")
	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}
	if sanitized == "" {
		sanitized = "guest"
	}
	return sanitized + "-" + strconv.FormatInt(t.UnixMilli(), 10)
}
