package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func initConfiguration(cmd *cobra.Command, args []string) error {
	configPath := "llmperf.yaml"
	if len(args) > 0 {
		configPath = args[0]
	}

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	// Create directory if needed
	dir := filepath.Dir(configPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Create sample configuration
	if err := configMgr.CreateSampleConfig(configPath); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	fmt.Printf("✅ Configuration file created at %s\n", configPath)
	fmt.Println("\n📝 Edit the file to point at your servers, then run 'llmperf test'.")
	fmt.Println("\nExample targets:")
	fmt.Println("  - Ollama: http://localhost:11434")
	fmt.Println("  - LM Studio: http://localhost:1234")
	fmt.Println("  - vLLM: http://localhost:8000")
	fmt.Println("  - Any OpenAI-compatible API")

	return nil
}

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage LLMPerf configuration files and settings.`,
	}

	initConfigCmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new configuration file with sample settings.
If no path is provided, creates llmperf.yaml in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: initConfiguration,
	}

	showConfigCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  `Display the current configuration settings.`,
		RunE:  showConfig,
	}

	validateConfigCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long:  `Validate the current configuration file for errors.`,
		RunE:  validateConfig,
	}
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initConfigCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(validateConfigCmd)
}

func showConfig(cmd *cobra.Command, args []string) error {
	config := configMgr.GetConfig()
	if config == nil {
		return fmt.Errorf("no configuration loaded")
	}

	benchmark := config.Benchmark

	fmt.Println("Current Configuration:")
	fmt.Println("=====================")

	fmt.Printf("Iterations: %d\n", benchmark.Iterations)
	fmt.Printf("Concurrency: %d\n", benchmark.Concurrency)
	fmt.Printf("Temperature: %.2f\n", benchmark.Temperature)
	fmt.Printf("Max Tokens: %d\n", benchmark.MaxTokens)
	fmt.Printf("Streaming: %t\n", benchmark.Stream)
	fmt.Printf("Timeout: %s\n", benchmark.Timeout)
	fmt.Printf("Output Prefix: %s\n", benchmark.OutputPrefix)
	fmt.Printf("Export Formats: %s\n", strings.Join(benchmark.Export, ", "))
	fmt.Printf("Prompts: %d\n", len(benchmark.Prompts))

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		fmt.Printf("API Key (OPENAI_API_KEY): %s\n", maskAPIKey(apiKey))
	} else {
		fmt.Println("API Key (OPENAI_API_KEY): not set")
	}

	fmt.Println("\nTargets:")
	if len(benchmark.Targets) == 0 {
		fmt.Println("  none configured (pass --target to the benchmark command)")
	}
	for i, target := range benchmark.Targets {
		fmt.Printf("  %d. %s\n", i+1, target.Name)
		fmt.Printf("     Base URL: %s\n", target.BaseURL)
		fmt.Printf("     Endpoint: %s\n", target.Endpoint())
		fmt.Printf("     Model: %s\n", target.Model)
	}

	return nil
}

func validateConfig(cmd *cobra.Command, args []string) error {
	config := configMgr.GetConfig()
	if config == nil {
		return fmt.Errorf("no configuration loaded")
	}

	fmt.Println("✅ Configuration is valid")
	fmt.Printf("Found %d target(s) configured\n", len(config.Benchmark.Targets))

	return nil
}

func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "***"
	}
	return apiKey[:4] + "..." + apiKey[len(apiKey)-4:]
}
