package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"llmperf/internal/models"
	"llmperf/internal/output"
)

// Config holds the application configuration
type Config struct {
	Benchmark models.BenchmarkConfig `mapstructure:"benchmark"`
}

// Manager handles configuration loading and management
type Manager struct {
	config *Config
	viper  *viper.Viper
}

// Default prompts used when neither the config file nor the command line
// supplies any.
var defaultPrompts = []string{
	"Explain the significance of the Turing Test in AI in 2-3 sentences.",
	"Write a Python function for Fibonacci using memoization.",
	"Summarize the benefits and drawbacks of static typing vs dynamic typing.",
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	return &Manager{
		viper: v,
	}
}

// Load loads configuration from file and environment variables. A missing
// config file is fine; targets can come entirely from the command line.
func (m *Manager) Load(configPath string) error {
	// Set default values
	m.setDefaults()

	// Set config file path if provided
	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	} else {
		// Look for config in common locations
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		m.viper.SetConfigName("llmperf")
		m.viper.SetConfigType("yaml")
		m.viper.AddConfigPath(".")
		m.viper.AddConfigPath(filepath.Join(home, ".config", "llmperf"))
		m.viper.AddConfigPath("/etc/llmperf")
	}

	// Environment variables, e.g. LLMPERF_BENCHMARK_CONCURRENCY
	m.viper.SetEnvPrefix("LLMPERF")
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	// Read config file
	if err := m.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Unmarshal into config struct
	m.config = &Config{}
	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return m.validate()
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	m.viper.SetDefault("benchmark.targets", []models.TargetSpec{})
	m.viper.SetDefault("benchmark.prompts", defaultPrompts)
	m.viper.SetDefault("benchmark.iterations", 3)
	m.viper.SetDefault("benchmark.concurrency", 2)
	m.viper.SetDefault("benchmark.temperature", 0.2)
	m.viper.SetDefault("benchmark.max_tokens", 512)
	m.viper.SetDefault("benchmark.stream", true)
	m.viper.SetDefault("benchmark.timeout", "60s")
	m.viper.SetDefault("benchmark.output_prefix", "./llm-bench")
	m.viper.SetDefault("benchmark.export", []string{output.FormatJSON, output.FormatCSV})
}

// validate validates the loaded configuration
func (m *Manager) validate() error {
	benchmark := m.config.Benchmark

	for i, target := range benchmark.Targets {
		if target.Name == "" {
			return fmt.Errorf("target %d: name is required", i)
		}
		if target.BaseURL == "" {
			return fmt.Errorf("target %s: base_url is required", target.Name)
		}
		if target.Model == "" {
			return fmt.Errorf("target %s: model is required", target.Name)
		}
	}

	if benchmark.Iterations <= 0 {
		return fmt.Errorf("iterations must be greater than 0")
	}

	if benchmark.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be greater than 0")
	}

	if benchmark.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be greater than 0")
	}

	// Validate timeout format
	if _, err := time.ParseDuration(benchmark.Timeout); err != nil {
		return fmt.Errorf("invalid timeout format: %w", err)
	}

	return output.ValidateFormats(benchmark.Export)
}

// GetConfig returns the loaded configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// GetTargets returns the configured targets
func (m *Manager) GetTargets() []models.TargetSpec {
	if m.config == nil {
		return []models.TargetSpec{}
	}
	return m.config.Benchmark.Targets
}

// GetBenchmarkConfig returns the benchmark configuration
func (m *Manager) GetBenchmarkConfig() models.BenchmarkConfig {
	if m.config == nil {
		return models.BenchmarkConfig{}
	}
	return m.config.Benchmark
}

// CreateSampleConfig creates a sample configuration file
func (m *Manager) CreateSampleConfig(path string) error {
	// Create YAML content manually to avoid encoding issues
	yamlContent := `benchmark:
  targets:
    - name: ollama
      base_url: http://localhost:11434
      model: llama3
    - name: lmstudio
      base_url: http://localhost:1234/v1
      model: qwen2.5-7b-instruct
  prompts:
    - Explain the significance of the Turing Test in AI in 2-3 sentences.
    - Write a Python function for Fibonacci using memoization.
  iterations: 3
  concurrency: 2
  temperature: 0.2
  max_tokens: 512
  stream: true
  timeout: 60s
  output_prefix: ./llm-bench
  export:
    - json
    - csv
`

	// Write the YAML content directly to file
	return os.WriteFile(path, []byte(yamlContent), 0644)
}
