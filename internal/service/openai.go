package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"llmperf/internal/models"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ProbeService wraps the OpenAI client for connectivity checks against one
// target. Benchmark trials themselves speak the wire protocol directly; the
// probe only has to confirm the endpoint answers a minimal completion.
type ProbeService struct {
	client  openai.Client
	target  models.TargetSpec
	timeout time.Duration
}

// NewProbeService creates a probe for the given target
func NewProbeService(target models.TargetSpec, timeout time.Duration) *ProbeService {
	opts := []option.RequestOption{
		option.WithBaseURL(target.APIBase()),
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	client := openai.NewClient(opts...)

	return &ProbeService{
		client:  client,
		target:  target,
		timeout: timeout,
	}
}

// Ping sends a tiny completion to the target and reports the round-trip
// time. The returned latency is also meaningful on error, as elapsed time
// until the failure.
func (s *ProbeService) Ping(ctx context.Context) (time.Duration, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	request := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("Hello, this is a connection test. Please respond with 'OK'."),
		},
		Model:     s.target.Model,
		MaxTokens: openai.Int(20),
	}

	start := time.Now()
	_, err := s.client.Chat.Completions.New(timeoutCtx, request)
	latency := time.Since(start)

	if err != nil {
		return latency, fmt.Errorf("connection test failed: %w", err)
	}
	return latency, nil
}
