package ai

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// PromptSpec is one prompt template from the registry file.
type PromptSpec struct {
	ID     string `yaml:"id"`
	System string `yaml:"system"`
	// Template is the user message; {{name}} placeholders are substituted
	// from the Generate input map.
	Template string            `yaml:"template"`
	Output   map[string]string `yaml:"output"`
	Style    struct {
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"style"`
}

// Registry holds the loaded prompt specs keyed by id.
type Registry struct {
	prompts map[string]PromptSpec
}

// LoadRegistry reads the YAML prompt file.
func LoadRegistry(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file struct {
		Prompts []PromptSpec `yaml:"prompts"`
	}
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, err
	}
	reg := &Registry{prompts: make(map[string]PromptSpec, len(file.Prompts))}
	for _, p := range file.Prompts {
		if p.ID == "" {
			return nil, fmt.Errorf("prompt without id in %s", path)
		}
		reg.prompts[p.ID] = p
	}
	return reg, nil
}

// Get returns the PromptSpec registered under an id.
func (r *Registry) Get(promptID string) (PromptSpec, error) {
	spec, ok := r.prompts[promptID]
	if !ok {
		return PromptSpec{}, fmt.Errorf("unknown prompt %q", promptID)
	}
	return spec, nil
}

// Render substitutes {{key}} placeholders and appends the output contract so
// the model returns exactly the keys the caller expects.
func (spec PromptSpec) Render(input map[string]string) string {
	body := spec.Template
	for key, value := range input {
		body = strings.ReplaceAll(body, "{{"+key+"}}", value)
	}

	keys := make([]string, 0, len(spec.Output))
	for key := range spec.Output {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\nRespond with a single JSON object with exactly these keys:\n")
	for _, key := range keys {
		b.WriteString("- ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(spec.Output[key])
		b.WriteString("\n")
	}
	b.WriteString("Output ONLY the JSON object.")
	return b.String()
}
