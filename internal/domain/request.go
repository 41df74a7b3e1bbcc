package domain

import "time"

// RequestKind distinguishes how an inquiry reached us.
type RequestKind string

const (
	KindContact      RequestKind = "Contact"
	KindSubscription RequestKind = "Subscription"
	KindLiveChat     RequestKind = "LiveChat"
)

// Status enumerates the fulfillment stages of a request. The order below is
// the display order; any member may follow any other member.
type Status string

const (
	StatusRequested        Status = "Requested"
	StatusInProgress       Status = "In Progress"
	StatusPricingSubmitted Status = "Pricing and Details Submitted"
	StatusOrderRegistered  Status = "Order registered By client"
	StatusPaymentDone      Status = "Payment Done"
	StatusServerOrdered    Status = "Server Ordered"
	StatusSetupStarted     Status = "Setup Started"
	StatusSetupComplete    Status = "Setup Complete"
	StatusDelivered        Status = "Delivered to Client"
	StatusClientSatisfied  Status = "Client Satisfied"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusRequested,
	StatusInProgress,
	StatusPricingSubmitted,
	StatusOrderRegistered,
	StatusPaymentDone,
	StatusServerOrdered,
	StatusSetupStarted,
	StatusSetupComplete,
	StatusDelivered,
	StatusClientSatisfied,
}

// IsValid reports whether s is a member of the status enum.
func (s Status) IsValid() bool {
	for _, candidate := range Statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// SubscriptionDetails holds the selector fields of a subscription query.
// Each selector may be "Other", in which case the companion free-text field
// carries the user-provided value.
type SubscriptionDetails struct {
	Protocol         string
	OtherProtocol    string
	NetworkType      string
	OtherNetworkType string
	NodeType         string
	OtherNodeType    string
}

// SupportRequest is the aggregate for one inquiry or chat session.
type SupportRequest struct {
	ID           string
	Name         string
	Email        string
	Kind         RequestKind
	Message      string
	Status       Status
	Subscription *SubscriptionDetails
	Notes        string
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
