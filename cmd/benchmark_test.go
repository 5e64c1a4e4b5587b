package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPrompts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.txt")
	content := "first prompt\n\n  second prompt  \n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	prompts, err := loadPrompts(path, []string{"third prompt"})
	if err != nil {
		t.Fatalf("loadPrompts() returned error: %v", err)
	}
	if len(prompts) != 3 {
		t.Fatalf("got %d prompts, want 3: %v", len(prompts), prompts)
	}
	// File lines come first, trimmed, blanks skipped; flag prompts follow
	if prompts[0] != "first prompt" || prompts[1] != "second prompt" || prompts[2] != "third prompt" {
		t.Fatalf("prompts = %v", prompts)
	}
}

func TestLoadPromptsWithoutInputs(t *testing.T) {
	prompts, err := loadPrompts("", nil)
	if err != nil {
		t.Fatalf("loadPrompts() returned error: %v", err)
	}
	if len(prompts) != 0 {
		t.Fatalf("got %d prompts, want none", len(prompts))
	}
}

func TestLoadPromptsMissingFile(t *testing.T) {
	if _, err := loadPrompts(filepath.Join(t.TempDir(), "missing.txt"), nil); err == nil {
		t.Fatal("expected error for missing prompts file")
	}
}

func TestParseExtraJSON(t *testing.T) {
	extra, err := parseExtraJSON(`{"top_p": 0.9, "seed": 7}`)
	if err != nil {
		t.Fatalf("parseExtraJSON() returned error: %v", err)
	}
	if extra["top_p"] != 0.9 {
		t.Fatalf("top_p = %v, want 0.9", extra["top_p"])
	}
	if extra["seed"] != float64(7) {
		t.Fatalf("seed = %v, want 7", extra["seed"])
	}
}

func TestParseExtraJSONRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"text"`, `42`, `null`, `{bad`} {
		if _, err := parseExtraJSON(raw); err == nil {
			t.Fatalf("parseExtraJSON(%q) expected error, got none", raw)
		}
	}
}

func TestFormatMs(t *testing.T) {
	if got := formatMs(nil); got != "n/a" {
		t.Fatalf("formatMs(nil) = %q, want n/a", got)
	}
	v := 123.456
	if got := formatMs(&v); got != "123.5ms" {
		t.Fatalf("formatMs(123.456) = %q, want 123.5ms", got)
	}
	if got := formatCount(nil); got != "n/a" {
		t.Fatalf("formatCount(nil) = %q, want n/a", got)
	}
	c := 88.0
	if got := formatCount(&c); got != "88.0" {
		t.Fatalf("formatCount(88) = %q, want 88.0", got)
	}
}
