package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator implements Generator against the OpenAI chat API.
type OpenAIGenerator struct {
	client   *openai.Client
	registry *Registry
	model    string
	timeout  time.Duration
}

// NewOpenAIGenerator builds a generator from an API key and prompt registry.
func NewOpenAIGenerator(apiKey, model string, registry *Registry, timeout time.Duration) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:   openai.NewClient(apiKey),
		registry: registry,
		model:    model,
		timeout:  timeout,
	}
}

// Generate renders the prompt, calls the model and returns its JSON output.
func (g *OpenAIGenerator) Generate(ctx context.Context, promptID string, input map[string]string) (json.RawMessage, error) {
	spec, err := g.registry.Get(promptID)
	if err != nil {
		return nil, err
	}

	temperature := spec.Style.Temperature
	if temperature <= 0 {
		temperature = 0.2
	}
	maxTokens := spec.Style.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 400
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: spec.System},
			{Role: openai.ChatMessageRoleUser, Content: spec.Render(input)},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices")
	}

	return ExtractJSON(resp.Choices[0].Message.Content)
}

// ExtractJSON parses raw model output into a JSON object, falling back to the
// outermost brace pair when the model wraps the object in prose.
func ExtractJSON(raw string) (json.RawMessage, error) {
	raw = strings.TrimSpace(raw)
	if json.Valid([]byte(raw)) {
		return json.RawMessage(raw), nil
	}
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first < 0 || last <= first {
		return nil, fmt.Errorf("no JSON object in model output")
	}
	candidate := raw[first : last+1]
	if !json.Valid([]byte(candidate)) {
		return nil, fmt.Errorf("model output is not valid JSON")
	}
	return json.RawMessage(candidate), nil
}
