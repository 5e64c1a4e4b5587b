package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"llmperf/internal/models"
)

func TestWriteResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	status := 200
	ttft := 12.5
	total := 98.25
	outcomes := []models.TrialOutcome{
		{
			Target: "ollama", Model: "llama3", PromptID: 0, Iteration: 1,
			Success: true, StatusCode: &status, TTFTMs: &ttft, TotalMs: &total,
			OutputChars: 42, OutputBytes: 44,
		},
		{
			Target: "ollama", Model: "llama3", PromptID: 1, Iteration: 2,
			Success: false, Error: "connection refused",
		},
	}

	if err := WriteResultsCSV(path, outcomes); err != nil {
		t.Fatalf("WriteResultsCSV() returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading written CSV failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2", len(rows))
	}

	wantHeader := []string{
		"target", "model", "prompt_id", "iteration", "success",
		"status_code", "ttft_ms", "total_ms", "output_chars", "output_bytes",
		"error",
	}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Fatalf("header = %v", rows[0])
	}

	want := []string{"ollama", "llama3", "0", "1", "true", "200", "12.5", "98.25", "42", "44", ""}
	if !reflect.DeepEqual(rows[1], want) {
		t.Fatalf("row 1 = %v, want %v", rows[1], want)
	}

	// Undefined optionals render as empty cells, not zeros
	want = []string{"ollama", "llama3", "1", "2", "false", "", "", "", "0", "0", "connection refused"}
	if !reflect.DeepEqual(rows[2], want) {
		t.Fatalf("row 2 = %v, want %v", rows[2], want)
	}
}

func TestWriteResultsCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := WriteResultsCSV(path, nil); err != nil {
		t.Fatalf("WriteResultsCSV() returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want header only", len(rows))
	}
}
