package cmd

import (
	"fmt"
	"strings"

	"llmperf/internal/charts"
	"llmperf/internal/output"

	"github.com/spf13/cobra"
)

var (
	displayCmd = &cobra.Command{
		Use:   "display <results-file>",
		Short: "Display saved benchmark results",
		Long: `Display benchmark results from a YAML file written by a previous run
('llmperf benchmark --save results.yaml' or the yaml export format). Shows
the text summary by default, bar charts with --charts, or the raw data as
JSON with --json.`,
		Args: cobra.ExactArgs(1),
		RunE: runDisplay,
	}

	// Display flags
	displayCharts bool
	displayJSON   bool
)

func init() {
	rootCmd.AddCommand(displayCmd)

	displayCmd.Flags().BoolVar(&displayCharts, "charts", false, "Display bar charts for latency, TTFT and throughput")
	displayCmd.Flags().BoolVar(&displayJSON, "json", false, "Output results in JSON format")
}

func runDisplay(cmd *cobra.Command, args []string) error {
	filename := args[0]

	resultsFile, err := output.LoadResultsFile(filename)
	if err != nil {
		return fmt.Errorf("failed to load results from %s: %w", filename, err)
	}

	// Display file metadata
	fmt.Printf("📁 Loaded results from: %s\n", filename)
	fmt.Printf("🕒 Benchmark run time: %s\n", resultsFile.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("📊 Prompts: %d, Iterations: %d, Concurrency: %d, Max Tokens: %d\n",
		len(resultsFile.Metadata.Prompts), resultsFile.Metadata.Iterations,
		resultsFile.Metadata.Concurrency, resultsFile.Metadata.MaxTokens)
	if resultsFile.Metadata.Stream {
		fmt.Printf("🚀 Streaming: enabled\n")
	}
	fmt.Println()

	if displayJSON {
		return outputJSONResults(resultsFile.Summaries, resultsFile.Results)
	}

	if displayCharts {
		fmt.Println(strings.Repeat("=", 80))
		fmt.Println("BENCHMARK CHARTS")
		fmt.Println(strings.Repeat("=", 80))

		chartGen := charts.NewChartGenerator(60, 15)
		fmt.Print(chartGen.GenerateAllCharts(resultsFile.Summaries))
		fmt.Println(strings.Repeat("=", 80))
		return nil
	}

	outputTextResults(resultsFile.Summaries)
	return nil
}
