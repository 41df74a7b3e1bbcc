package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	apperrors "github.com/blockbuddy/lead-console/pkg/util"
)

func newAIService(gen *fakeGenerator) *AIService {
	return NewAIService(AIDependencies{
		Generator: gen,
		Logger:    zap.NewNop(),
	})
}

func TestIdentifyProtocolRejectsShortNeeds(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newAIService(gen)

	for _, needs := range []string{"", "   ", "too short"} {
		_, err := svc.IdentifyProtocol(context.Background(), needs)
		if err == nil {
			t.Fatalf("needs %q: expected error", needs)
		}
		var domainErr *apperrors.DomainError
		if !errors.As(err, &domainErr) {
			t.Fatalf("needs %q: error = %v, want DomainError", needs, err)
		}
		if domainErr.Code != "VALIDATION_FAILED" {
			t.Errorf("needs %q: code = %q, want VALIDATION_FAILED", needs, domainErr.Code)
		}
		if domainErr.Message != MsgNeedsTooShort {
			t.Errorf("message = %q, want %q", domainErr.Message, MsgNeedsTooShort)
		}
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times for invalid input", gen.calls)
	}
}

func TestIdentifyProtocolReturnsRecommendation(t *testing.T) {
	gen := &fakeGenerator{response: json.RawMessage(`{"protocol":"Ethereum","reason":"Largest smart contract ecosystem."}`)}
	svc := newAIService(gen)

	rec, err := svc.IdentifyProtocol(context.Background(), "I want to run smart contracts with wide tooling support.")
	if err != nil {
		t.Fatalf("IdentifyProtocol: %v", err)
	}
	if rec.Protocol != "Ethereum" {
		t.Errorf("Protocol = %q", rec.Protocol)
	}
	if rec.Reason == "" {
		t.Error("Reason must be non-empty")
	}
}

func TestIdentifyProtocolGeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream timeout")}
	svc := newAIService(gen)

	_, err := svc.IdentifyProtocol(context.Background(), "I want to run smart contracts with wide tooling support.")
	if err == nil {
		t.Fatal("expected error")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Message != MsgIdentifyFailed {
		t.Errorf("error = %v, want %q", err, MsgIdentifyFailed)
	}
}

func TestIdentifyProtocolMalformedOutput(t *testing.T) {
	cases := []json.RawMessage{
		json.RawMessage(`not json at all`),
		json.RawMessage(`{"protocol":""}`),
		json.RawMessage(`{"reason":"no protocol field"}`),
	}
	for _, raw := range cases {
		gen := &fakeGenerator{response: raw}
		svc := newAIService(gen)
		_, err := svc.IdentifyProtocol(context.Background(), "I want to run smart contracts with wide tooling support.")
		if err == nil {
			t.Errorf("output %s: expected error", raw)
		}
	}
}

func TestSummarizeRequestRejectsEmptyText(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newAIService(gen)

	_, err := svc.SummarizeRequest(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected error")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Message != MsgNoRequestText {
		t.Errorf("error = %v, want %q", err, MsgNoRequestText)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times for empty input", gen.calls)
	}
}

func TestSummarizeRequestReturnsTriageFields(t *testing.T) {
	gen := &fakeGenerator{response: json.RawMessage(
		`{"summary":"Customer wants a Polygon validator.","userNeed":"Validator hosting","suggestedService":"Dedicated validator node"}`)}
	svc := newAIService(gen)

	summary, err := svc.SummarizeRequest(context.Background(), "Hi, we need a Polygon validator with monitoring.")
	if err != nil {
		t.Fatalf("SummarizeRequest: %v", err)
	}
	if summary.Summary == "" || summary.UserNeed == "" || summary.SuggestedService == "" {
		t.Errorf("summary incomplete: %+v", summary)
	}
}

func TestSummarizeRequestFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream timeout")}
	svc := newAIService(gen)

	_, err := svc.SummarizeRequest(context.Background(), "Hi, we need a Polygon validator with monitoring.")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Message != MsgSummarizeFailed {
		t.Errorf("error = %v, want %q", err, MsgSummarizeFailed)
	}
}
