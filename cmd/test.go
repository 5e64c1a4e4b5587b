package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"llmperf/internal/service"
)

var (
	testCmd = &cobra.Command{
		Use:   "test",
		Short: "Test connections to configured targets",
		Long: `Test connectivity to all configured targets.
This command sends a short chat completion to each target to verify that it
is reachable and responding before running a full benchmark.`,
		RunE: runTest,
	}
)

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	config := configMgr.GetBenchmarkConfig()
	if len(config.Targets) == 0 {
		return fmt.Errorf("no targets configured: add targets to the config file first")
	}

	// Create benchmark service
	benchmarkService, err := service.NewBenchmarkService(config)
	if err != nil {
		return fmt.Errorf("failed to create benchmark service: %w", err)
	}

	fmt.Println("Testing connections to configured targets...")
	fmt.Println()

	ctx := context.Background()
	results := benchmarkService.TestConnections(ctx)

	successCount := 0
	targets := benchmarkService.GetTargets()

	for _, target := range targets {
		result := results[target.Name]
		if result.Err != nil {
			fmt.Printf("❌ %s: %v\n", target.Name, result.Err)
		} else {
			fmt.Printf("✅ %s: Connection successful (%v)\n", target.Name, result.Latency.Round(time.Millisecond))
			successCount++
		}
	}

	totalCount := len(targets)
	fmt.Println()
	fmt.Printf("Results: %d/%d targets connected successfully\n", successCount, totalCount)

	if successCount == totalCount {
		fmt.Println("🎉 All targets are ready for benchmarking!")
	} else {
		fmt.Println("⚠️  Some targets failed connection test. Check your configuration.")
		return fmt.Errorf("connection test failed for %d target(s)", totalCount-successCount)
	}

	return nil
}
