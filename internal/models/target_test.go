package models

import "testing"

func TestTargetSpecEndpoint(t *testing.T) {
	cases := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434/v1/chat/completions"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1/chat/completions"},
		{"v1 suffix", "http://localhost:1234/v1", "http://localhost:1234/v1/chat/completions"},
		{"v1 with trailing slash", "http://localhost:1234/v1/", "http://localhost:1234/v1/chat/completions"},
		{"double trailing slash", "http://localhost:8080//", "http://localhost:8080/v1/chat/completions"},
		{"hosted api", "https://api.openai.com/v1", "https://api.openai.com/v1/chat/completions"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := TargetSpec{Name: "test", BaseURL: tc.baseURL, Model: "m"}
			if got := target.Endpoint(); got != tc.want {
				t.Fatalf("Endpoint() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTargetSpecAPIBase(t *testing.T) {
	target := TargetSpec{Name: "ollama", BaseURL: "http://localhost:11434", Model: "llama3.1"}
	if got, want := target.APIBase(), "http://localhost:11434/v1"; got != want {
		t.Fatalf("APIBase() = %q, want %q", got, want)
	}

	target.BaseURL = "http://localhost:1234/v1/"
	if got, want := target.APIBase(), "http://localhost:1234/v1"; got != want {
		t.Fatalf("APIBase() = %q, want %q", got, want)
	}
}

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget("ollama|http://localhost:11434|llama3.1")
	if err != nil {
		t.Fatalf("ParseTarget() returned error: %v", err)
	}
	if target.Name != "ollama" || target.BaseURL != "http://localhost:11434" || target.Model != "llama3.1" {
		t.Fatalf("ParseTarget() = %+v", target)
	}
}

func TestParseTargetTrimsAndKeepsExtraPipes(t *testing.T) {
	target, err := ParseTarget(" lmstudio | http://localhost:1234 | vendor|model ")
	if err != nil {
		t.Fatalf("ParseTarget() returned error: %v", err)
	}
	if target.Name != "lmstudio" {
		t.Fatalf("Name = %q", target.Name)
	}
	if target.BaseURL != "http://localhost:1234" {
		t.Fatalf("BaseURL = %q", target.BaseURL)
	}
	// Only the first two separators split; the rest is part of the model id.
	if target.Model != "vendor|model" {
		t.Fatalf("Model = %q", target.Model)
	}
}

func TestParseTargetInvalid(t *testing.T) {
	for _, arg := range []string{"", "ollama", "ollama|http://localhost:11434", "ollama||llama3.1", " |http://h|m"} {
		if _, err := ParseTarget(arg); err == nil {
			t.Fatalf("ParseTarget(%q) expected error, got none", arg)
		}
	}
}

func TestSummaryRecordKey(t *testing.T) {
	record := SummaryRecord{Target: "ollama", Model: "llama3.1"}
	if got, want := record.Key(), "ollama|llama3.1"; got != want {
		t.Fatalf("Key() = %q, want %q", got, want)
	}
}

func TestBenchmarkConfigTrialCount(t *testing.T) {
	config := BenchmarkConfig{
		Targets:    []TargetSpec{{Name: "a"}, {Name: "b"}},
		Prompts:    []string{"p1", "p2", "p3"},
		Iterations: 2,
	}
	if got := config.TrialCount(); got != 12 {
		t.Fatalf("TrialCount() = %d, want 12", got)
	}
}
