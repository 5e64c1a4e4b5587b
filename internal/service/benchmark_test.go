package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"llmperf/internal/models"
)

func TestNewBenchmarkServiceRejectsBadConfig(t *testing.T) {
	base := models.BenchmarkConfig{Iterations: 1, Concurrency: 1, Timeout: "5s"}

	bad := base
	bad.Timeout = "soon"
	if _, err := NewBenchmarkService(bad); err == nil {
		t.Fatal("expected error for unparseable timeout")
	}

	bad = base
	bad.Iterations = 0
	if _, err := NewBenchmarkService(bad); err == nil {
		t.Fatal("expected error for zero iterations")
	}

	bad = base
	bad.Concurrency = 0
	if _, err := NewBenchmarkService(bad); err == nil {
		t.Fatal("expected error for zero concurrency")
	}
}

func TestRunProducesOneOutcomePerTrial(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n")
		fmt.Fprint(w, "data: [DONE]\n")
	}))
	defer srv.Close()

	svc := newTestService(t, models.BenchmarkConfig{
		Targets: []models.TargetSpec{
			{Name: "one", BaseURL: srv.URL, Model: "m1"},
			{Name: "two", BaseURL: srv.URL, Model: "m2"},
		},
		Prompts:     []string{"a", "b", "c"},
		Iterations:  2,
		Concurrency: 4,
		Stream:      true,
		MaxTokens:   16,
	})

	outcomes := svc.Run(context.Background())
	if len(outcomes) != 12 {
		t.Fatalf("collected %d outcomes, want 12", len(outcomes))
	}
	if got := requests.Load(); got != 12 {
		t.Fatalf("server saw %d requests, want 12", got)
	}

	// Every (target, prompt, iteration) combination appears exactly once
	seen := make(map[string]int)
	for _, outcome := range outcomes {
		seen[fmt.Sprintf("%s|%d|%d", outcome.Target, outcome.PromptID, outcome.Iteration)]++
	}
	if len(seen) != 12 {
		t.Fatalf("saw %d distinct trials, want 12", len(seen))
	}
	for key, n := range seen {
		if n != 1 {
			t.Fatalf("trial %s collected %d times", key, n)
		}
	}
	// Prompt ids are zero-based, iterations one-based
	if _, ok := seen["one|0|1"]; !ok {
		t.Fatal("missing trial one|0|1")
	}
	if _, ok := seen["two|2|2"]; !ok {
		t.Fatal("missing trial two|2|2")
	}
}

func TestRunHonorsConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := inFlight.Add(1)
		for {
			old := peak.Load()
			if current <= old || peak.CompareAndSwap(old, current) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		inFlight.Add(-1)
		fmt.Fprint(w, "data: [DONE]\n")
	}))
	defer srv.Close()

	svc := newTestService(t, models.BenchmarkConfig{
		Targets:     []models.TargetSpec{{Name: "one", BaseURL: srv.URL, Model: "m"}},
		Prompts:     []string{"a", "b"},
		Iterations:  4,
		Concurrency: 2,
		Stream:      true,
		MaxTokens:   16,
	})

	outcomes := svc.Run(context.Background())
	if len(outcomes) != 8 {
		t.Fatalf("collected %d outcomes, want 8", len(outcomes))
	}
	if got := peak.Load(); got > 2 {
		t.Fatalf("observed %d concurrent requests, limit is 2", got)
	}
}

func TestRunAndSummarizeSingleTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n")
		fmt.Fprint(w, "data: [DONE]\n")
	}))
	defer srv.Close()

	svc := newTestService(t, models.BenchmarkConfig{
		Targets:     []models.TargetSpec{{Name: "one", BaseURL: srv.URL, Model: "m"}},
		Prompts:     []string{"a", "b"},
		Iterations:  2,
		Concurrency: 1,
		Stream:      true,
		MaxTokens:   16,
	})

	outcomes := svc.Run(context.Background())
	if len(outcomes) != 4 {
		t.Fatalf("collected %d outcomes, want 4", len(outcomes))
	}

	summaries := svc.GenerateSummary(outcomes)
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if summaries[0].Runs != 4 {
		t.Fatalf("Runs = %d, want 4", summaries[0].Runs)
	}
	if summaries[0].SuccessRate != 1 {
		t.Fatalf("SuccessRate = %v, want 1", summaries[0].SuccessRate)
	}
}

func TestRunCollectsFailuresWithoutAborting(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc := newTestService(t, models.BenchmarkConfig{
		Targets:     []models.TargetSpec{{Name: "down", BaseURL: url, Model: "m"}},
		Prompts:     []string{"a", "b"},
		Iterations:  2,
		Concurrency: 2,
		Stream:      true,
		MaxTokens:   16,
		Timeout:     "2s",
	})

	outcomes := svc.Run(context.Background())
	if len(outcomes) != 4 {
		t.Fatalf("collected %d outcomes, want 4", len(outcomes))
	}
	for _, outcome := range outcomes {
		if outcome.Success {
			t.Fatalf("trial against closed server succeeded: %+v", outcome)
		}
		if outcome.StatusCode != nil {
			t.Fatalf("status code = %d, want nil", *outcome.StatusCode)
		}
		if outcome.TotalMs == nil {
			t.Fatal("total latency missing on failed trial")
		}
		if outcome.Error == "" {
			t.Fatal("error text missing on failed trial")
		}
	}
}

func TestTestConnections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"probe","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"OK"}}]}`)
	}))
	defer srv.Close()

	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()

	svc := newTestService(t, models.BenchmarkConfig{
		Targets: []models.TargetSpec{
			{Name: "up", BaseURL: srv.URL, Model: "m"},
			{Name: "down", BaseURL: downURL, Model: "m"},
		},
		Prompts: []string{"p"},
		Timeout: "2s",
	})

	results := svc.TestConnections(context.Background())
	if len(results) != 2 {
		t.Fatalf("got %d probe results, want 2", len(results))
	}
	if results["up"].Err != nil {
		t.Fatalf("probe against live server failed: %v", results["up"].Err)
	}
	if results["down"].Err == nil {
		t.Fatal("probe against closed server should fail")
	}
}
