package domain

import "testing"

func TestStatusIsValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.IsValid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	for _, s := range []Status{"", "Open", "requested", "Done"} {
		if s.IsValid() {
			t.Errorf("status %q should be invalid", s)
		}
	}
}

func TestStatusDisplayOrder(t *testing.T) {
	if len(Statuses) != 10 {
		t.Fatalf("expected 10 statuses, got %d", len(Statuses))
	}
	if Statuses[0] != StatusRequested {
		t.Errorf("first status = %q, want %q", Statuses[0], StatusRequested)
	}
	if Statuses[len(Statuses)-1] != StatusClientSatisfied {
		t.Errorf("last status = %q, want %q", Statuses[len(Statuses)-1], StatusClientSatisfied)
	}
}

func TestMessageSenderIsValid(t *testing.T) {
	if !SenderUser.IsValid() || !SenderAgent.IsValid() {
		t.Error("user and agent must be valid senders")
	}
	if MessageSender("system").IsValid() {
		t.Error("unknown sender accepted")
	}
}
