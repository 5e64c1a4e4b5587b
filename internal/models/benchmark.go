package models

import "time"

// ChatMessage represents a chat message
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RequestConfig carries the request parameters shared read-only by every
// trial of a run
type RequestConfig struct {
	Temperature float64
	MaxTokens   int
	Stream      bool
	Timeout     time.Duration
	Extra       map[string]any
}

// BenchmarkConfig represents the benchmark configuration
type BenchmarkConfig struct {
	Targets      []TargetSpec   `mapstructure:"targets" yaml:"targets"`
	Prompts      []string       `mapstructure:"prompts" yaml:"prompts"`
	Iterations   int            `mapstructure:"iterations" yaml:"iterations"`
	Concurrency  int            `mapstructure:"concurrency" yaml:"concurrency"`
	Temperature  float64        `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens    int            `mapstructure:"max_tokens" yaml:"max_tokens"`
	Stream       bool           `mapstructure:"stream" yaml:"stream"`
	Timeout      string         `mapstructure:"timeout" yaml:"timeout"`
	Extra        map[string]any `mapstructure:"extra" yaml:"extra,omitempty"`
	OutputPrefix string         `mapstructure:"output_prefix" yaml:"output_prefix"`
	Export       []string       `mapstructure:"export" yaml:"export"`
}

// TrialCount returns the number of trials the configuration produces
func (c BenchmarkConfig) TrialCount() int {
	return len(c.Targets) * len(c.Prompts) * c.Iterations
}
