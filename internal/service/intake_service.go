package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blockbuddy/lead-console/internal/domain"
	"github.com/blockbuddy/lead-console/internal/events"
	"github.com/blockbuddy/lead-console/internal/repository"
	"github.com/blockbuddy/lead-console/internal/validate"
)

// User-facing result strings for form submissions.
const (
	MsgContactSuccess      = "Your message has been sent successfully!"
	MsgSubscriptionSuccess = "Your query has been sent successfully!"
	MsgValidationFailed    = "Validation failed."
	MsgServerError         = "An error occurred while submitting the form."
)

// IntakeService validates and persists inbound inquiries.
type IntakeService struct {
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// IntakeDependencies bundles requirements for the intake service.
type IntakeDependencies struct {
	RequestRepo repository.RequestRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	return &IntakeService{
		requests:   deps.RequestRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// SubmitContact validates and stores a contact inquiry. On validation failure
// the field errors are returned and nothing is written.
func (s *IntakeService) SubmitContact(ctx context.Context, input validate.ContactInput) (*domain.SupportRequest, validate.FieldErrors, error) {
	if fe := validate.Contact(input); !fe.Empty() {
		return nil, fe, nil
	}

	req := &domain.SupportRequest{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Kind:    domain.KindContact,
		Message: strings.TrimSpace(input.Message),
		Status:  domain.StatusRequested,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		s.logger.Error("contact submission failed", zap.Error(err))
		return nil, nil, err
	}

	s.publishCreated(ctx, req)
	return req, nil, nil
}

// SubmitSubscription validates and stores a subscription query.
func (s *IntakeService) SubmitSubscription(ctx context.Context, input validate.SubscriptionInput) (*domain.SupportRequest, validate.FieldErrors, error) {
	if fe := validate.Subscription(input); !fe.Empty() {
		return nil, fe, nil
	}

	req := &domain.SupportRequest{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Kind:    domain.KindSubscription,
		Message: strings.TrimSpace(input.Query),
		Status:  domain.StatusRequested,
		Subscription: &domain.SubscriptionDetails{
			Protocol:         input.Protocol,
			OtherProtocol:    input.OtherProtocol,
			NetworkType:      input.NetworkType,
			OtherNetworkType: input.OtherNetworkType,
			NodeType:         input.NodeType,
			OtherNodeType:    input.OtherNodeType,
		},
	}
	if err := s.requests.Create(ctx, req); err != nil {
		s.logger.Error("subscription submission failed", zap.Error(err))
		return nil, nil, err
	}

	s.publishCreated(ctx, req)
	return req, nil, nil
}

func (s *IntakeService) publishCreated(ctx context.Context, req *domain.SupportRequest) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRequestCreated,
		RequestID: req.ID,
		Timestamp: time.Now(),
		Payload: events.RequestCreatedPayload{
			Kind:    req.Kind,
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		},
	})
}
