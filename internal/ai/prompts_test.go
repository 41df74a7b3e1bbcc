package ai

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPromptsYAML = `
prompts:
  - id: identify_protocol
    system: You are an expert in blockchain protocols.
    template: |
      User needs: {{needs}}
    output:
      protocol: The recommended protocol.
      reason: Why it fits.
    style:
      temperature: 0.2
      max_tokens: 400
`

func writePrompts(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte(testPromptsYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry(writePrompts(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	spec, err := reg.Get("identify_protocol")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if spec.Style.Temperature != 0.2 || spec.Style.MaxTokens != 400 {
		t.Errorf("style not parsed: %+v", spec.Style)
	}
	if _, err := reg.Get("nope"); err == nil {
		t.Error("unknown prompt id accepted")
	}
}

func TestRenderSubstitutesAndListsOutputKeys(t *testing.T) {
	reg, err := LoadRegistry(writePrompts(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	spec, _ := reg.Get("identify_protocol")
	rendered := spec.Render(map[string]string{"needs": "sub-second finality and EVM compatibility"})

	if !strings.Contains(rendered, "User needs: sub-second finality and EVM compatibility") {
		t.Errorf("placeholder not substituted:\n%s", rendered)
	}
	if strings.Contains(rendered, "{{needs}}") {
		t.Error("placeholder left in rendered prompt")
	}
	// protocol sorts before reason; key order must be stable
	protoIdx := strings.Index(rendered, "- protocol:")
	reasonIdx := strings.Index(rendered, "- reason:")
	if protoIdx < 0 || reasonIdx < 0 || protoIdx > reasonIdx {
		t.Errorf("output contract keys missing or unordered:\n%s", rendered)
	}
}

func TestShippedPromptsFile(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "prompts", "prompts.yaml"))
	if err != nil {
		t.Fatalf("load shipped prompts: %v", err)
	}

	identify, err := reg.Get(PromptIdentifyProtocol)
	if err != nil {
		t.Fatalf("get %s: %v", PromptIdentifyProtocol, err)
	}
	// The enumeration is part of the prompt contract; "Kilt Unit" is a
	// single entry, not two.
	if !strings.Contains(identify.Template, "Kilt Unit,") {
		t.Error("protocol list missing the Kilt Unit entry")
	}
	if strings.Contains(identify.Template, "Kilt,") {
		t.Error("protocol list splits Kilt Unit into two entries")
	}
	for _, name := range []string{"Ethereum", "Flare Chain", "Skale"} {
		if !strings.Contains(identify.Template, name) {
			t.Errorf("protocol list missing %s", name)
		}
	}

	if _, err := reg.Get(PromptSummarizeRequest); err != nil {
		t.Fatalf("get %s: %v", PromptSummarizeRequest, err)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"clean", `{"protocol":"Solana","reason":"fast"}`, `{"protocol":"Solana","reason":"fast"}`, false},
		{"wrapped", "Here you go:\n```json\n{\"protocol\":\"Base\"}\n```", `{"protocol":"Base"}`, false},
		{"no object", "sorry, I cannot help", "", true},
		{"broken braces", `{"protocol": `, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
