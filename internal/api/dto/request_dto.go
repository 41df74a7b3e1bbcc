package dto

import (
	"time"

	"github.com/blockbuddy/lead-console/internal/domain"
)

// ContactRequest payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubscriptionRequest payload.
type SubscriptionRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Protocol         string `json:"protocol"`
	OtherProtocol    string `json:"otherProtocol"`
	NetworkType      string `json:"networkType"`
	OtherNetworkType string `json:"otherNetworkType"`
	NodeType         string `json:"nodeType"`
	OtherNodeType    string `json:"otherNodeType"`
	Query            string `json:"query"`
}

// SubmitResponse is the form-submission result: a human message plus
// field-level errors, explicitly null on success. Server failures carry a
// "_form" key instead of a field name.
type SubmitResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// FormError is the whole-form error map used when the failure is not tied to
// a single field.
func FormError(message string) map[string][]string {
	return map[string][]string{"_form": {message}}
}

// RequestResponse is one support request as seen by the admin console.
type RequestResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Type             string    `json:"type"`
	Message          string    `json:"message"`
	Status           string    `json:"status"`
	Protocol         string    `json:"protocol,omitempty"`
	OtherProtocol    string    `json:"otherProtocol,omitempty"`
	NetworkType      string    `json:"networkType,omitempty"`
	OtherNetworkType string    `json:"otherNetworkType,omitempty"`
	NodeType         string    `json:"nodeType,omitempty"`
	OtherNodeType    string    `json:"otherNodeType,omitempty"`
	Notes            string    `json:"notes"`
	Version          int64     `json:"version"`
	Timestamp        time.Time `json:"timestamp"`
}

// FromRequest maps a domain request to its response shape.
func FromRequest(req *domain.SupportRequest) RequestResponse {
	resp := RequestResponse{
		ID:        req.ID,
		Name:      req.Name,
		Email:     req.Email,
		Type:      string(req.Kind),
		Message:   req.Message,
		Status:    string(req.Status),
		Notes:     req.Notes,
		Version:   req.Version,
		Timestamp: req.CreatedAt,
	}
	if sub := req.Subscription; sub != nil {
		resp.Protocol = sub.Protocol
		resp.OtherProtocol = sub.OtherProtocol
		resp.NetworkType = sub.NetworkType
		resp.OtherNetworkType = sub.OtherNetworkType
		resp.NodeType = sub.NodeType
		resp.OtherNodeType = sub.OtherNodeType
	}
	return resp
}

// FromRequests maps a slice preserving order.
func FromRequests(reqs []domain.SupportRequest) []RequestResponse {
	items := make([]RequestResponse, 0, len(reqs))
	for i := range reqs {
		items = append(items, FromRequest(&reqs[i]))
	}
	return items
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateNotesRequest payload.
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// MutationResponse confirms a status or notes update.
type MutationResponse struct {
	Success bool  `json:"success"`
	Version int64 `json:"version,omitempty"`
}
