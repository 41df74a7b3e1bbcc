package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blockbuddy/lead-console/internal/domain"
	"github.com/blockbuddy/lead-console/internal/events"
	"github.com/blockbuddy/lead-console/internal/repository"
	apperrors "github.com/blockbuddy/lead-console/pkg/util"
)

// AdminService serves the triage console: listing, status transitions and
// note edits.
type AdminService struct {
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AdminDependencies bundles requirements for the admin service.
type AdminDependencies struct {
	RequestRepo repository.RequestRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		requests:   deps.RequestRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ListRequests returns every request newest first.
func (s *AdminService) ListRequests(ctx context.Context) ([]domain.SupportRequest, error) {
	reqs, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
	return reqs, nil
}

// UpdateStatus moves a request to any member of the status enum. Transitions
// are deliberately unrestricted; only membership is checked. On failure the
// stored value is untouched.
func (s *AdminService) UpdateStatus(ctx context.Context, requestID string, newStatus domain.Status) (int64, error) {
	if !newStatus.IsValid() {
		return 0, apperrors.NewValidationError(
			fmt.Sprintf("unknown status %q", newStatus),
			map[string]any{"status": []string{"Status is not a known value."}},
		)
	}

	current, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return 0, err
	}

	version, err := s.requests.UpdateStatus(ctx, requestID, newStatus)
	if err != nil {
		s.logger.Error("status update failed",
			zap.String("request_id", requestID),
			zap.String("status", string(newStatus)),
			zap.Error(err))
		return 0, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: requestID,
		Payload: events.RequestStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: newStatus,
			Version:   version,
		},
	})
	return version, nil
}

// UpdateNotes persists the admin's notes draft for a request.
func (s *AdminService) UpdateNotes(ctx context.Context, requestID, notes string) (int64, error) {
	version, err := s.requests.UpdateNotes(ctx, requestID, notes)
	if err != nil {
		s.logger.Error("notes update failed", zap.String("request_id", requestID), zap.Error(err))
		return 0, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRequestNotesUpdated,
		RequestID: requestID,
		Payload:   events.RequestNotesUpdatedPayload{Version: version},
	})
	return version, nil
}

func (s *AdminService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
