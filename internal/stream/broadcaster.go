package stream

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/blockbuddy/lead-console/internal/api/dto"
	"github.com/blockbuddy/lead-console/internal/events"
	"github.com/blockbuddy/lead-console/internal/repository"
)

// TopicRequests carries the full admin request list.
const TopicRequests = "requests"

// TopicChat returns the topic carrying one session's message transcript.
func TopicChat(requestID string) string {
	return "chat:" + requestID
}

// Broadcaster pushes full snapshots to the hub whenever a domain event lands.
// Every frame is the complete current list, not a delta, so a subscriber that
// drops a frame is fully caught up by the next one.
type Broadcaster struct {
	hub      *Hub
	requests repository.RequestRepository
	messages repository.MessageRepository
	logger   *zap.Logger
}

// NewBroadcaster creates a broadcaster over the given hub.
func NewBroadcaster(hub *Hub, requests repository.RequestRepository, messages repository.MessageRepository, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{hub: hub, requests: requests, messages: messages, logger: logger}
}

// RegisterHandlers subscribes to every event that changes an admin or chat view.
func (b *Broadcaster) RegisterHandlers(dispatcher events.Dispatcher) {
	for _, t := range []events.EventType{
		events.EventRequestCreated,
		events.EventRequestStatusChanged,
		events.EventRequestNotesUpdated,
		events.EventChatSessionStarted,
	} {
		dispatcher.Subscribe(t, b.handleRequestEvent)
	}
	dispatcher.Subscribe(events.EventChatMessageAdded, b.handleChatEvent)
}

func (b *Broadcaster) handleRequestEvent(ctx context.Context, event events.Event) error {
	b.PublishRequestList(ctx)
	return nil
}

func (b *Broadcaster) handleChatEvent(ctx context.Context, event events.Event) error {
	b.PublishChatTranscript(ctx, event.RequestID)
	return nil
}

// PublishRequestList snapshots the request list to TopicRequests.
func (b *Broadcaster) PublishRequestList(ctx context.Context) {
	if b.hub.SubscriberCount(TopicRequests) == 0 {
		return
	}
	reqs, err := b.requests.List(ctx)
	if err != nil {
		b.logger.Warn("request list snapshot failed", zap.Error(err))
		return
	}
	payload, err := json.Marshal(dto.FromRequests(reqs))
	if err != nil {
		return
	}
	b.hub.Publish(TopicRequests, payload)
}

// PublishChatTranscript snapshots one session's ordered messages to its topic.
func (b *Broadcaster) PublishChatTranscript(ctx context.Context, requestID string) {
	topic := TopicChat(requestID)
	if b.hub.SubscriberCount(topic) == 0 {
		return
	}
	msgs, err := b.messages.ListByRequest(ctx, requestID)
	if err != nil {
		b.logger.Warn("chat transcript snapshot failed",
			zap.String("request_id", requestID), zap.Error(err))
		return
	}
	payload, err := json.Marshal(dto.FromMessages(msgs))
	if err != nil {
		return
	}
	b.hub.Publish(topic, payload)
}
