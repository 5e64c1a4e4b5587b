package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"llmperf/internal/models"
	"llmperf/internal/output"
	"llmperf/internal/service"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

var (
	benchmarkCmd = &cobra.Command{
		Use:   "benchmark",
		Short: "Run latency benchmarks against configured targets",
		Long: `Run the benchmark matrix against every configured target: each prompt is
sent the configured number of times per target, under bounded concurrency,
and time-to-first-token plus total latency are recorded for every request.
Results are summarized per target and exported as JSON, CSV and/or YAML.`,
		RunE: runBenchmark,
	}

	// Benchmark flags
	targetArgs   []string
	promptArgs   []string
	promptsFile  string
	iterations   int
	concurrency  int
	maxTokens    int
	temperature  float64
	timeoutFlag  string
	noStream     bool
	extraJSON    string
	outputPrefix string
	exportFlag   []string
	savePath     string
	outputJSON   bool
)

func init() {
	rootCmd.AddCommand(benchmarkCmd)

	benchmarkCmd.Flags().StringArrayVarP(&targetArgs, "target", "t", nil, "Target as 'name|base_url|model' (can be repeated, appended to config targets)")
	benchmarkCmd.Flags().StringArrayVarP(&promptArgs, "prompt", "p", nil, "Prompt to benchmark with (can be repeated, replaces config prompts)")
	benchmarkCmd.Flags().StringVar(&promptsFile, "prompts-file", "", "File with one prompt per line (blank lines skipped)")
	benchmarkCmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "Iterations per prompt per target (overrides config)")
	benchmarkCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Maximum concurrent requests (overrides config)")
	benchmarkCmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Maximum tokens per completion (overrides config)")
	benchmarkCmd.Flags().Float64Var(&temperature, "temperature", 0, "Sampling temperature (overrides config)")
	benchmarkCmd.Flags().StringVar(&timeoutFlag, "timeout", "", "Per-request timeout, e.g. 90s (overrides config)")
	benchmarkCmd.Flags().BoolVar(&noStream, "no-stream", false, "Disable streaming; TTFT then equals total latency")
	benchmarkCmd.Flags().StringVar(&extraJSON, "extra-json", "", "JSON object merged into every request body")
	benchmarkCmd.Flags().StringVar(&outputPrefix, "output-prefix", "", "Path prefix for export artifacts (overrides config)")
	benchmarkCmd.Flags().StringSliceVar(&exportFlag, "export", nil, "Export formats: json, csv, yaml (overrides config)")
	benchmarkCmd.Flags().StringVar(&savePath, "save", "", "Write the full run to a YAML file for later display")
	benchmarkCmd.Flags().BoolVar(&outputJSON, "json", false, "Output results as JSON on stdout")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	config := configMgr.GetBenchmarkConfig()

	// Command line targets are appended to whatever the config file provides
	for _, arg := range targetArgs {
		target, err := models.ParseTarget(arg)
		if err != nil {
			return err
		}
		config.Targets = append(config.Targets, target)
	}
	if len(config.Targets) == 0 {
		return fmt.Errorf("no targets configured: add targets to the config file or pass --target")
	}

	prompts, err := loadPrompts(promptsFile, promptArgs)
	if err != nil {
		return err
	}
	if len(prompts) > 0 {
		config.Prompts = prompts
	}

	// Override config with command line flags if provided
	if iterations > 0 {
		config.Iterations = iterations
	}
	if concurrency > 0 {
		config.Concurrency = concurrency
	}
	if maxTokens > 0 {
		config.MaxTokens = maxTokens
	}
	if cmd.Flags().Changed("temperature") {
		config.Temperature = temperature
	}
	if timeoutFlag != "" {
		config.Timeout = timeoutFlag
	}
	if noStream {
		config.Stream = false
	}
	if outputPrefix != "" {
		config.OutputPrefix = outputPrefix
	}
	if exportFlag != nil {
		config.Export = exportFlag
	}
	if err := output.ValidateFormats(config.Export); err != nil {
		return err
	}

	if extraJSON != "" {
		extra, err := parseExtraJSON(extraJSON)
		if err != nil {
			return err
		}
		config.Extra = extra
	}

	// Create benchmark service
	benchmarkService, err := service.NewBenchmarkService(config)
	if err != nil {
		return fmt.Errorf("failed to create benchmark service: %w", err)
	}

	if verbose {
		pp.Println(config)
	}

	fmt.Printf("Benchmarking %d target(s): %d prompt(s) x %d iteration(s), concurrency %d\n",
		len(config.Targets), len(config.Prompts), config.Iterations, config.Concurrency)
	fmt.Println()

	ctx := context.Background()
	started := time.Now()

	outcomes := benchmarkService.Run(ctx)
	summaries := benchmarkService.GenerateSummary(outcomes)

	output.Logger.Info("benchmark finished",
		"trials", len(outcomes),
		"elapsed", time.Since(started).Round(time.Millisecond))

	if outputJSON {
		if err := outputJSONResults(summaries, outcomes); err != nil {
			return err
		}
	} else {
		outputTextResults(summaries)
	}

	if savePath != "" {
		if err := output.WriteResultsFile(savePath, newResultsFile(config, outcomes, summaries)); err != nil {
			return fmt.Errorf("failed to save results file: %w", err)
		}
		fmt.Printf("\n📝 Saved results to: %s\n", savePath)
	}

	return exportResults(config, outcomes, summaries)
}

// loadPrompts reads the prompts file (when given) and appends repeated
// --prompt flags, file lines first
func loadPrompts(path string, flagPrompts []string) ([]string, error) {
	var prompts []string

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompts file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				prompts = append(prompts, line)
			}
		}
	}

	prompts = append(prompts, flagPrompts...)
	return prompts, nil
}

// parseExtraJSON parses the --extra-json flag, which must be a JSON object
func parseExtraJSON(raw string) (map[string]any, error) {
	var extra map[string]any
	if err := json.Unmarshal([]byte(raw), &extra); err != nil {
		return nil, fmt.Errorf("--extra-json must be a JSON object: %w", err)
	}
	if extra == nil {
		return nil, fmt.Errorf("--extra-json must be a JSON object, got %q", raw)
	}
	return extra, nil
}

// exportResults writes the selected export artifacts. Individual write
// failures are logged rather than fatal so the console summary always lands.
func exportResults(config models.BenchmarkConfig, outcomes []models.TrialOutcome, summaries []models.SummaryRecord) error {
	prefix := config.OutputPrefix

	if dir := filepath.Dir(prefix); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	for _, format := range config.Export {
		var err error
		switch format {
		case output.FormatJSON:
			if err = output.WriteResultsJSON(prefix+".results.json", outcomes); err == nil {
				err = output.WriteSummaryJSON(prefix+".summary.json", summaries)
			}
		case output.FormatCSV:
			err = output.WriteResultsCSV(prefix+".results.csv", outcomes)
		case output.FormatYAML:
			err = output.WriteResultsFile(prefix+".results.yaml", newResultsFile(config, outcomes, summaries))
		}
		if err != nil {
			output.Logger.Error("export failed", "format", format, "error", err)
		}
	}

	fmt.Printf("\n📁 Saved artifacts with prefix: %s\n", prefix)
	return nil
}

func newResultsFile(config models.BenchmarkConfig, outcomes []models.TrialOutcome, summaries []models.SummaryRecord) output.ResultsFile {
	return output.ResultsFile{
		Timestamp: time.Now(),
		Metadata:  runMetadata(config),
		Summaries: summaries,
		Results:   outcomes,
	}
}

func runMetadata(config models.BenchmarkConfig) output.RunMetadata {
	return output.RunMetadata{
		Prompts:     config.Prompts,
		Iterations:  config.Iterations,
		Concurrency: config.Concurrency,
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
		Stream:      config.Stream,
		Timeout:     config.Timeout,
	}
}

func outputJSONResults(summaries []models.SummaryRecord, outcomes []models.TrialOutcome) error {
	payload := struct {
		Summaries []models.SummaryRecord `json:"summaries"`
		Results   []models.TrialOutcome  `json:"results"`
	}{
		Summaries: summaries,
		Results:   outcomes,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func outputTextResults(summaries []models.SummaryRecord) {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("BENCHMARK RESULTS")
	fmt.Println(strings.Repeat("=", 80))

	for _, summary := range summaries {
		fmt.Printf("\n📊 %s - %s\n", strings.ToUpper(summary.Target), summary.Model)
		fmt.Println(strings.Repeat("-", 50))
		fmt.Printf("Runs:               %d\n", summary.Runs)
		fmt.Printf("Success Rate:       %.1f%%\n", summary.SuccessRate*100)
		fmt.Printf("TTFT Avg:           %s\n", formatMs(summary.TTFTAvgMs))
		fmt.Printf("TTFT p50 / p95:     %s / %s\n", formatMs(summary.TTFTP50Ms), formatMs(summary.TTFTP95Ms))
		fmt.Printf("Total Avg:          %s\n", formatMs(summary.TotalAvgMs))
		fmt.Printf("Total p50 / p95:    %s / %s\n", formatMs(summary.TotalP50Ms), formatMs(summary.TotalP95Ms))
		fmt.Printf("Output Chars Avg:   %s\n", formatCount(summary.OutputCharsAvg))
		fmt.Printf("Output Bytes Avg:   %s\n", formatCount(summary.OutputBytesAvg))
		fmt.Printf("Throughput:         %s chars/sec, %s bytes/sec\n",
			formatCount(summary.CharsPerSec), formatCount(summary.BytesPerSec))
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
}

// formatMs renders an optional millisecond statistic, "n/a" when undefined
func formatMs(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1fms", *v)
}

// formatCount renders an optional count or rate, "n/a" when undefined
func formatCount(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *v)
}
