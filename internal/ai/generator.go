// Package ai wraps the external generative-text service behind a narrow
// prompt-id interface so callers never depend on a specific vendor.
package ai

import (
	"context"
	"encoding/json"
)

// Prompt identifiers known to the registry.
const (
	PromptIdentifyProtocol = "identify_protocol"
	PromptSummarizeRequest = "summarize_request"
)

// Generator renders the named prompt with the given input values and returns
// the model's structured JSON output.
type Generator interface {
	Generate(ctx context.Context, promptID string, input map[string]string) (json.RawMessage, error)
}
