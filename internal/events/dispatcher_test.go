package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []Event
	d.Subscribe(EventRequestCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventRequestCreated, RequestID: "r1"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 1 || got[0].RequestID != "r1" {
		t.Fatalf("expected one delivery for r1, got %v", got)
	}
}

func TestDispatcherIgnoresOtherTypes(t *testing.T) {
	d := NewInMemoryDispatcher()
	called := false
	d.Subscribe(EventChatMessageAdded, func(context.Context, Event) error {
		called = true
		return nil
	})
	_ = d.Publish(context.Background(), Event{Type: EventRequestCreated})
	if called {
		t.Error("handler for another event type was invoked")
	}
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()
	second := false
	d.Subscribe(EventRequestCreated, func(context.Context, Event) error {
		return errors.New("first handler failed")
	})
	d.Subscribe(EventRequestCreated, func(context.Context, Event) error {
		second = true
		return nil
	})
	if err := d.Publish(context.Background(), Event{Type: EventRequestCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !second {
		t.Error("second handler not invoked after first failed")
	}
}
