package validate

import (
	"net/mail"
	"strings"
)

// FieldErrors maps a field name to the human-readable problems found on it.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Empty reports whether no errors were recorded.
func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

const (
	msgNameTooShort    = "Name must be at least 2 characters."
	msgInvalidEmail    = "Invalid email address."
	msgMessageTooShort = "Message must be at least 10 characters."
	msgQueryTooShort   = "Query must be at least 10 characters."
	msgProtocolReq     = "Protocol is required."
	msgNetworkTypeReq  = "Network Type is required."
	msgNodeTypeReq     = "Node Type is required."
	msgTextRequired    = "Message text is required."
	msgSenderInvalid   = "Sender must be user or agent."
)

// ContactInput is a contact form payload before validation.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// Contact checks a contact submission. Pure; no side effects.
func Contact(in ContactInput) FieldErrors {
	fe := FieldErrors{}
	checkName(fe, "name", in.Name)
	checkEmail(fe, "email", in.Email)
	if len(strings.TrimSpace(in.Message)) < 10 {
		fe.Add("message", msgMessageTooShort)
	}
	return fe
}

// SubscriptionInput is a subscription query payload before validation.
type SubscriptionInput struct {
	Name             string
	Email            string
	Protocol         string
	OtherProtocol    string
	NetworkType      string
	OtherNetworkType string
	NodeType         string
	OtherNodeType    string
	Query            string
}

// Subscription checks a subscription query. The Other* companion fields are
// intentionally not required when their selector is "Other"; the intake
// surface accepts them blank.
func Subscription(in SubscriptionInput) FieldErrors {
	fe := FieldErrors{}
	checkName(fe, "name", in.Name)
	checkEmail(fe, "email", in.Email)
	if strings.TrimSpace(in.Protocol) == "" {
		fe.Add("protocol", msgProtocolReq)
	}
	if strings.TrimSpace(in.NetworkType) == "" {
		fe.Add("networkType", msgNetworkTypeReq)
	}
	if strings.TrimSpace(in.NodeType) == "" {
		fe.Add("nodeType", msgNodeTypeReq)
	}
	if len(strings.TrimSpace(in.Query)) < 10 {
		fe.Add("query", msgQueryTooShort)
	}
	return fe
}

// ChatStartInput is the details step of a live chat.
type ChatStartInput struct {
	Name  string
	Email string
}

// ChatStart checks the name/email pair that opens a session.
func ChatStart(in ChatStartInput) FieldErrors {
	fe := FieldErrors{}
	checkName(fe, "name", in.Name)
	checkEmail(fe, "email", in.Email)
	return fe
}

// ChatMessageInput is one message send.
type ChatMessageInput struct {
	Sender string
	Text   string
}

// ChatMessage checks a message payload.
func ChatMessage(in ChatMessageInput) FieldErrors {
	fe := FieldErrors{}
	if in.Sender != "user" && in.Sender != "agent" {
		fe.Add("sender", msgSenderInvalid)
	}
	if strings.TrimSpace(in.Text) == "" {
		fe.Add("text", msgTextRequired)
	}
	return fe
}

func checkName(fe FieldErrors, field, name string) {
	if len(strings.TrimSpace(name)) < 2 {
		fe.Add(field, msgNameTooShort)
	}
}

func checkEmail(fe FieldErrors, field, email string) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		fe.Add(field, msgInvalidEmail)
		return
	}
	// mail.ParseAddress accepts dotless domains; form emails never have them.
	at := strings.LastIndex(email, "@")
	if at < 0 || !strings.Contains(email[at+1:], ".") {
		fe.Add(field, msgInvalidEmail)
	}
}
