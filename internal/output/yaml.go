package output

import (
	"fmt"
	"os"
	"time"

	"llmperf/internal/models"

	"gopkg.in/yaml.v3"
)

// RunMetadata describes the setup of a saved benchmark run
type RunMetadata struct {
	Prompts     []string `yaml:"prompts" json:"prompts"`
	Iterations  int      `yaml:"iterations" json:"iterations"`
	Concurrency int      `yaml:"concurrency" json:"concurrency"`
	Temperature float64  `yaml:"temperature" json:"temperature"`
	MaxTokens   int      `yaml:"max_tokens" json:"max_tokens"`
	Stream      bool     `yaml:"stream" json:"stream"`
	Timeout     string   `yaml:"timeout" json:"timeout"`
}

// ResultsFile is the saved artifact of one benchmark run, consumed by the
// display command
type ResultsFile struct {
	Timestamp time.Time              `yaml:"timestamp" json:"timestamp"`
	Metadata  RunMetadata            `yaml:"metadata" json:"metadata"`
	Summaries []models.SummaryRecord `yaml:"summaries" json:"summaries"`
	Results   []models.TrialOutcome  `yaml:"results" json:"results"`
}

// WriteResultsFile saves a benchmark run to path as YAML
func WriteResultsFile(path string, file ResultsFile) error {
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadResultsFile loads a saved benchmark run from a YAML file
func LoadResultsFile(path string) (*ResultsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file ResultsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &file, nil
}
