package models

import (
	"fmt"
	"strings"
)

// TargetSpec identifies one endpoint under test
type TargetSpec struct {
	Name    string `mapstructure:"name" json:"name" yaml:"name"`
	BaseURL string `mapstructure:"base_url" json:"base_url" yaml:"base_url"`
	Model   string `mapstructure:"model" json:"model" yaml:"model"`
}

// Endpoint returns the chat-completions URL for the target, normalizing
// trailing slashes and an already-present /v1 suffix so exactly one
// completions path is produced
func (t TargetSpec) Endpoint() string {
	base := strings.TrimRight(t.BaseURL, "/")
	if strings.HasSuffix(base, "/v1") {
		return base + "/chat/completions"
	}
	return base + "/v1/chat/completions"
}

// APIBase returns the OpenAI-style API root of the target
func (t TargetSpec) APIBase() string {
	return strings.TrimSuffix(t.Endpoint(), "/chat/completions")
}

// ParseTarget parses a target argument of the form 'name|base_url|model'.
// Extra pipes belong to the model identifier.
func ParseTarget(arg string) (TargetSpec, error) {
	parts := strings.SplitN(arg, "|", 3)
	if len(parts) != 3 {
		return TargetSpec{}, fmt.Errorf("target must be of the form 'name|base_url|model', got %q", arg)
	}

	target := TargetSpec{
		Name:    strings.TrimSpace(parts[0]),
		BaseURL: strings.TrimSpace(parts[1]),
		Model:   strings.TrimSpace(parts[2]),
	}
	if target.Name == "" || target.BaseURL == "" || target.Model == "" {
		return TargetSpec{}, fmt.Errorf("target must be of the form 'name|base_url|model', got %q", arg)
	}

	return target, nil
}
