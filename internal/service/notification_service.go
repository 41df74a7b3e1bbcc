package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blockbuddy/lead-console/internal/config"
	"github.com/blockbuddy/lead-console/internal/domain"
	"github.com/blockbuddy/lead-console/internal/events"
	"github.com/blockbuddy/lead-console/internal/repository"
)

// NotificationService turns domain events into outbound notifications: an
// outbox row for the external mailer plus one best-effort SMTP send and one
// webhook POST. Failures are logged and never retried; a saved request is
// never rolled back because its notification failed.
type NotificationService struct {
	dispatcher events.Dispatcher
	requests   repository.RequestRepository
	outbox     repository.OutboxRepository
	logger     *zap.Logger
	cfg        config.NotificationConfig
	httpClient *http.Client
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, requests repository.RequestRepository, outbox repository.OutboxRepository, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		requests:   requests,
		outbox:     outbox,
		logger:     logger,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRequestCreated, n.handleRequestCreated)
	n.dispatcher.Subscribe(events.EventRequestStatusChanged, n.handleStatusChanged)
}

func (n *NotificationService) handleRequestCreated(ctx context.Context, event events.Event) error {
	req, err := n.requests.GetByID(ctx, event.RequestID)
	if err != nil {
		n.logger.Warn("notification skipped; request not readable",
			zap.String("request_id", event.RequestID), zap.Error(err))
		return nil
	}

	subject, body := composeMail(req)
	entry := &repository.OutboxEntry{
		RequestID: req.ID,
		Subject:   subject,
		Body:      body,
		Recipient: n.cfg.SalesEmail,
	}
	if err := n.outbox.Create(ctx, entry); err != nil {
		n.logger.Warn("outbox write failed", zap.String("request_id", req.ID), zap.Error(err))
	}

	sent, err := n.sendEmail(subject, body)
	if err != nil {
		n.logger.Warn("notification email failed",
			zap.String("request_id", req.ID), zap.Error(err))
		return nil
	}
	// A skipped send leaves the outbox row pending for the external mailer.
	if sent && entry.ID != "" {
		if err := n.outbox.MarkSent(ctx, entry.ID); err != nil {
			n.logger.Warn("outbox mark-sent failed", zap.String("outbox_id", entry.ID), zap.Error(err))
		}
	}
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.postWebhook(ctx, event)
	return nil
}

// sendEmail reports whether a send was actually attempted; with no SMTP host
// configured it skips and returns false so the outbox row stays pending.
func (n *NotificationService) sendEmail(subject, body string) (bool, error) {
	if strings.TrimSpace(n.cfg.SMTPHost) == "" {
		n.logger.Debug("EMAIL_SERVER_HOST not set; skipping email send",
			zap.String("subject", subject))
		return false, nil
	}

	addr := n.cfg.SMTPHost + ":" + n.cfg.SMTPPort
	var auth smtp.Auth
	if n.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPass, n.cfg.SMTPHost)
	}

	msg := fmt.Sprintf("From: \"BlockBuddy\" <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		n.cfg.EmailFrom, n.cfg.SalesEmail, subject, body)
	if err := smtp.SendMail(addr, auth, n.cfg.EmailFrom, []string{n.cfg.SalesEmail}, []byte(msg)); err != nil {
		return true, err
	}
	return true, nil
}

func (n *NotificationService) postWebhook(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Warn("webhook post failed", zap.String("event", string(event.Type)), zap.Error(err))
		return
	}
	_ = resp.Body.Close()
}

func composeMail(req *domain.SupportRequest) (subject, body string) {
	switch req.Kind {
	case domain.KindSubscription:
		subject = "New Subscription Query"
		sub := req.Subscription
		if sub == nil {
			sub = &domain.SubscriptionDetails{}
		}
		body = fmt.Sprintf(
			"You have a new subscription query:\n\nName: %s\nEmail: %s\nProtocol: %s\nNetwork Type: %s\nNode Type: %s\nQuery: %s",
			req.Name, req.Email,
			resolveOther(sub.Protocol, sub.OtherProtocol),
			resolveOther(sub.NetworkType, sub.OtherNetworkType),
			resolveOther(sub.NodeType, sub.OtherNodeType),
			req.Message)
	case domain.KindLiveChat:
		subject = "New Live Chat Session"
		body = fmt.Sprintf(
			"A visitor started a live chat:\n\nName: %s\nEmail: %s\nChat ID: %s",
			req.Name, req.Email, req.ID)
	default:
		subject = "New Contact Form Submission"
		body = fmt.Sprintf(
			"You have a new contact form submission:\n\nName: %s\nEmail: %s\nMessage: %s",
			req.Name, req.Email, req.Message)
	}
	return subject, body
}

func resolveOther(value, other string) string {
	if value == "Other" && other != "" {
		return other
	}
	return value
}
