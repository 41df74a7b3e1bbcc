package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/blockbuddy/lead-console/internal/domain"
	"github.com/blockbuddy/lead-console/internal/events"
	"github.com/blockbuddy/lead-console/internal/session"
)

type fakeRequestRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.SupportRequest
	seq       int
	failWrite error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: map[string]*domain.SupportRequest{}}
}

func (r *fakeRequestRepo) Create(ctx context.Context, req *domain.SupportRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	r.seq++
	req.ID = "req-" + strconv.Itoa(r.seq)
	req.Version = 1
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	clone := *req
	r.byID[req.ID] = &clone
	return nil
}

func (r *fakeRequestRepo) UpsertSession(ctx context.Context, req *domain.SupportRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	if existing, ok := r.byID[req.ID]; ok {
		req.Version = existing.Version + 1
		req.CreatedAt = existing.CreatedAt
	} else {
		req.Version = 1
		req.CreatedAt = time.Now()
	}
	req.UpdatedAt = time.Now()
	clone := *req
	r.byID[req.ID] = &clone
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (*domain.SupportRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *req
	return &clone, nil
}

func (r *fakeRequestRepo) List(ctx context.Context) ([]domain.SupportRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SupportRequest, 0, len(r.byID))
	for _, req := range r.byID {
		out = append(out, *req)
	}
	return out, nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return 0, r.failWrite
	}
	req, ok := r.byID[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	req.Status = status
	req.Version++
	return req.Version, nil
}

func (r *fakeRequestRepo) UpdateNotes(ctx context.Context, id string, notes string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return 0, r.failWrite
	}
	req, ok := r.byID[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	req.Notes = notes
	req.Version++
	return req.Version, nil
}

type fakeMessageRepo struct {
	mu        sync.Mutex
	messages  []domain.ChatMessage
	seq       int
	failWrite error
}

func (r *fakeMessageRepo) Create(ctx context.Context, msg *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	r.seq++
	msg.ID = "msg-" + strconv.Itoa(r.seq)
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) ListByRequest(ctx context.Context, requestID string) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ChatMessage
	for _, m := range r.messages {
		if m.RequestID == requestID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeSessionStore struct {
	mu      sync.Mutex
	byID    map[string]session.Identity
	deleted []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byID: map[string]session.Identity{}}
}

func (s *fakeSessionStore) Save(ctx context.Context, id session.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id.ChatID] = id
	return nil
}

func (s *fakeSessionStore) Get(ctx context.Context, chatID string) (*session.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byID[chatID]
	if !ok {
		return nil, session.ErrNotFound
	}
	return &id, nil
}

func (s *fakeSessionStore) Delete(ctx context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, chatID)
	s.deleted = append(s.deleted, chatID)
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *recordingDispatcher) byType(t events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, e := range d.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fakeGenerator struct {
	mu       sync.Mutex
	response json.RawMessage
	err      error
	calls    int
}

func (g *fakeGenerator) Generate(ctx context.Context, promptID string, input map[string]string) (json.RawMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.response, nil
}
