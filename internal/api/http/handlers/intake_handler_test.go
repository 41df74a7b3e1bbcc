package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/blockbuddy/lead-console/internal/domain"
	"github.com/blockbuddy/lead-console/internal/service"
)

// failingRequestRepo errors every write; reads behave as an empty store.
type failingRequestRepo struct{}

var errStoreDown = errors.New("store unavailable")

func (failingRequestRepo) Create(ctx context.Context, req *domain.SupportRequest) error {
	return errStoreDown
}

func (failingRequestRepo) UpsertSession(ctx context.Context, req *domain.SupportRequest) error {
	return errStoreDown
}

func (failingRequestRepo) GetByID(ctx context.Context, id string) (*domain.SupportRequest, error) {
	return nil, errStoreDown
}

func (failingRequestRepo) List(ctx context.Context) ([]domain.SupportRequest, error) {
	return nil, errStoreDown
}

func (failingRequestRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (int64, error) {
	return 0, errStoreDown
}

func (failingRequestRepo) UpdateNotes(ctx context.Context, id string, notes string) (int64, error) {
	return 0, errStoreDown
}

func newIntakeApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := service.NewIntakeService(service.IntakeDependencies{
		RequestRepo: failingRequestRepo{},
		Logger:      zap.NewNop(),
	})
	app := fiber.New()
	h := NewIntakeHandler(svc)
	app.Post("/api/contact", h.SubmitContact)
	app.Post("/api/subscription", h.SubmitSubscription)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp, decoded
}

func TestSubmitContactStoreFailureCarriesFormError(t *testing.T) {
	app := newIntakeApp(t)

	resp, body := postJSON(t, app, "/api/contact",
		`{"name":"Alice","email":"alice@example.com","message":"I need two validator nodes."}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if got := string(body["message"]); got != `"An error occurred while submitting the form."` {
		t.Errorf("message = %s", got)
	}

	var fieldErrs map[string][]string
	if err := json.Unmarshal(body["errors"], &fieldErrs); err != nil {
		t.Fatalf("errors not an object: %s", body["errors"])
	}
	if got := fieldErrs["_form"]; len(got) != 1 || got[0] != "Server error" {
		t.Errorf("_form errors = %v, want [Server error]", got)
	}
}

func TestSubmitSubscriptionStoreFailureCarriesFormError(t *testing.T) {
	app := newIntakeApp(t)

	resp, body := postJSON(t, app, "/api/subscription",
		`{"name":"Bob","email":"bob@example.com","protocol":"Ethereum","networkType":"Mainnet","nodeType":"Validator Node","query":"Need a validator with SLA."}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	var fieldErrs map[string][]string
	if err := json.Unmarshal(body["errors"], &fieldErrs); err != nil {
		t.Fatalf("errors not an object: %s", body["errors"])
	}
	if got := fieldErrs["_form"]; len(got) != 1 || got[0] != "Server error" {
		t.Errorf("_form errors = %v, want [Server error]", got)
	}
}

func TestSubmitContactValidationFailureListsFields(t *testing.T) {
	app := newIntakeApp(t)

	resp, body := postJSON(t, app, "/api/contact", `{"name":"A","email":"bad","message":"hi"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var fieldErrs map[string][]string
	if err := json.Unmarshal(body["errors"], &fieldErrs); err != nil {
		t.Fatalf("errors not an object: %s", body["errors"])
	}
	for _, field := range []string{"name", "email", "message"} {
		if len(fieldErrs[field]) == 0 {
			t.Errorf("missing error for %q", field)
		}
	}
	if len(fieldErrs["_form"]) != 0 {
		t.Errorf("_form must stay empty on field validation: %v", fieldErrs["_form"])
	}
}
