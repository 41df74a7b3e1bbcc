package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/blockbuddy/lead-console/internal/domain"
	"github.com/blockbuddy/lead-console/internal/events"
	"github.com/blockbuddy/lead-console/internal/validate"
)

func newIntakeService(repo *fakeRequestRepo, dispatcher *recordingDispatcher) *IntakeService {
	return NewIntakeService(IntakeDependencies{
		RequestRepo: repo,
		Dispatcher:  dispatcher,
		Logger:      zap.NewNop(),
	})
}

func TestSubmitContactPersistsRequest(t *testing.T) {
	repo := newFakeRequestRepo()
	dispatcher := &recordingDispatcher{}
	svc := newIntakeService(repo, dispatcher)

	req, fieldErrs, err := svc.SubmitContact(context.Background(), validate.ContactInput{
		Name:    "Alice",
		Email:   "alice@example.com",
		Message: "I need two validator nodes.",
	})
	if err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}
	if !fieldErrs.Empty() {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}
	if req.Kind != domain.KindContact {
		t.Errorf("Kind = %q, want %q", req.Kind, domain.KindContact)
	}
	if req.Status != domain.StatusRequested {
		t.Errorf("Status = %q, want %q", req.Status, domain.StatusRequested)
	}
	if req.ID == "" || req.Version != 1 {
		t.Errorf("persisted request incomplete: id=%q version=%d", req.ID, req.Version)
	}
	if created := dispatcher.byType(events.EventRequestCreated); len(created) != 1 {
		t.Errorf("request_created events = %d, want 1", len(created))
	}
}

func TestSubmitContactValidationFailureWritesNothing(t *testing.T) {
	repo := newFakeRequestRepo()
	dispatcher := &recordingDispatcher{}
	svc := newIntakeService(repo, dispatcher)

	_, fieldErrs, err := svc.SubmitContact(context.Background(), validate.ContactInput{
		Name:    "A",
		Email:   "not-an-email",
		Message: "short",
	})
	if err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}
	if fieldErrs.Empty() {
		t.Fatal("expected field errors")
	}
	for _, field := range []string{"name", "email", "message"} {
		if len(fieldErrs[field]) == 0 {
			t.Errorf("missing error for %q", field)
		}
	}
	if len(repo.byID) != 0 {
		t.Errorf("repo has %d requests, want 0", len(repo.byID))
	}
	if len(dispatcher.events) != 0 {
		t.Errorf("dispatched %d events, want 0", len(dispatcher.events))
	}
}

func TestSubmitSubscriptionStoresDetails(t *testing.T) {
	repo := newFakeRequestRepo()
	dispatcher := &recordingDispatcher{}
	svc := newIntakeService(repo, dispatcher)

	req, fieldErrs, err := svc.SubmitSubscription(context.Background(), validate.SubscriptionInput{
		Name:          "Bob",
		Email:         "bob@example.com",
		Protocol:      "Other",
		OtherProtocol: "Celestia",
		NetworkType:   "Mainnet",
		NodeType:      "Validator Node",
		Query:         "Need a validator with SLA and monitoring.",
	})
	if err != nil {
		t.Fatalf("SubmitSubscription: %v", err)
	}
	if !fieldErrs.Empty() {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}
	if req.Kind != domain.KindSubscription {
		t.Errorf("Kind = %q, want %q", req.Kind, domain.KindSubscription)
	}
	if req.Subscription == nil {
		t.Fatal("Subscription details missing")
	}
	if req.Subscription.OtherProtocol != "Celestia" {
		t.Errorf("OtherProtocol = %q, want Celestia", req.Subscription.OtherProtocol)
	}
}

func TestSubmitSubscriptionMissingSelectors(t *testing.T) {
	svc := newIntakeService(newFakeRequestRepo(), &recordingDispatcher{})

	_, fieldErrs, err := svc.SubmitSubscription(context.Background(), validate.SubscriptionInput{
		Name:  "Bob",
		Email: "bob@example.com",
		Query: "Need a validator with SLA and monitoring.",
	})
	if err != nil {
		t.Fatalf("SubmitSubscription: %v", err)
	}
	want := map[string]string{
		"protocol":    "Protocol is required.",
		"networkType": "Network Type is required.",
		"nodeType":    "Node Type is required.",
	}
	for field, msg := range want {
		if got := fieldErrs[field]; len(got) != 1 || got[0] != msg {
			t.Errorf("%s errors = %v, want [%q]", field, got, msg)
		}
	}
}

func TestUserFacingCopy(t *testing.T) {
	// These strings are rendered verbatim in the site frontend.
	cases := map[string]string{
		MsgContactSuccess:      "Your message has been sent successfully!",
		MsgSubscriptionSuccess: "Your query has been sent successfully!",
		MsgValidationFailed:    "Validation failed.",
		MsgServerError:         "An error occurred while submitting the form.",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("message = %q, want %q", got, want)
		}
	}
}

func TestSubmitContactStoreFailure(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.failWrite = errors.New("connection reset")
	dispatcher := &recordingDispatcher{}
	svc := newIntakeService(repo, dispatcher)

	_, _, err := svc.SubmitContact(context.Background(), validate.ContactInput{
		Name:    "Alice",
		Email:   "alice@example.com",
		Message: "I need two validator nodes.",
	})
	if err == nil {
		t.Fatal("expected error from failing store")
	}
	if len(dispatcher.events) != 0 {
		t.Errorf("dispatched %d events after failed write, want 0", len(dispatcher.events))
	}
}
