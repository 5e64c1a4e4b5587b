package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"llmperf/internal/models"
	"llmperf/internal/output"
)

// BenchmarkService orchestrates benchmark trials across multiple targets
type BenchmarkService struct {
	targets []models.TargetSpec
	prompts []string
	config  models.BenchmarkConfig
	client  *ChatClient
	timeout time.Duration
}

// ProbeResult is the outcome of one connectivity probe
type ProbeResult struct {
	Latency time.Duration
	Err     error
}

// NewBenchmarkService creates a new benchmark service
func NewBenchmarkService(config models.BenchmarkConfig) (*BenchmarkService, error) {
	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration: %w", err)
	}
	if config.Iterations < 1 {
		return nil, fmt.Errorf("iterations must be at least 1")
	}
	if config.Concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1")
	}

	request := models.RequestConfig{
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
		Stream:      config.Stream,
		Timeout:     timeout,
		Extra:       config.Extra,
	}

	return &BenchmarkService{
		targets: config.Targets,
		prompts: config.Prompts,
		config:  config,
		client:  NewChatClient(request),
		timeout: timeout,
	}, nil
}

// TestConnections probes connectivity to all configured targets
func (bs *BenchmarkService) TestConnections(ctx context.Context) map[string]ProbeResult {
	results := make(map[string]ProbeResult)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, target := range bs.targets {
		wg.Add(1)
		go func(t models.TargetSpec) {
			defer wg.Done()

			probe := NewProbeService(t, bs.timeout)
			latency, err := probe.Ping(ctx)

			mu.Lock()
			results[t.Name] = ProbeResult{Latency: latency, Err: err}
			mu.Unlock()
		}(target)
	}

	wg.Wait()
	return results
}

// Run executes the full cartesian product of targets, prompts and
// iterations as independent trials under the concurrency limit. It returns
// exactly one outcome per trial, ordered by completion, regardless of how
// many trials fail.
func (bs *BenchmarkService) Run(ctx context.Context) []models.TrialOutcome {
	total := bs.config.TrialCount()
	outcomes := make(chan models.TrialOutcome, total)

	// Admission semaphore: a trial holds a slot only for its own
	// request/response cycle.
	semaphore := make(chan struct{}, bs.config.Concurrency)
	var wg sync.WaitGroup

	for _, target := range bs.targets {
		for promptIdx, prompt := range bs.prompts {
			for iteration := 1; iteration <= bs.config.Iterations; iteration++ {
				wg.Add(1)
				go func(t models.TargetSpec, promptIdx, iteration int, prompt string) {
					defer wg.Done()

					semaphore <- struct{}{}
					defer func() { <-semaphore }()

					outcomes <- bs.client.RunTrial(ctx, t, promptIdx, iteration, prompt)
				}(target, promptIdx, iteration, prompt)
			}
		}
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	collected := make([]models.TrialOutcome, 0, total)
	for outcome := range outcomes {
		output.Logger.Debug("trial finished",
			"target", outcome.Target,
			"model", outcome.Model,
			"prompt", outcome.PromptID,
			"iteration", outcome.Iteration,
			"success", outcome.Success,
			"completed", len(collected)+1,
			"total", total)
		collected = append(collected, outcome)
	}
	return collected
}

// GetTargets returns the configured targets
func (bs *BenchmarkService) GetTargets() []models.TargetSpec {
	return bs.targets
}
