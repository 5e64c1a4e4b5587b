package cmd

import (
	"fmt"
	"os"

	"llmperf/internal/config"
	"llmperf/internal/output"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	verbose   bool
	configMgr *config.Manager
	rootCmd   = &cobra.Command{
		Use:   "llmperf",
		Short: "A latency benchmark for OpenAI-compatible LLM endpoints",
		Long: `LLMPerf measures latency and throughput of OpenAI-compatible chat
completion endpoints such as Ollama, LM Studio, vLLM or hosted APIs. It times
time-to-first-token and total latency under bounded concurrency and reports
per-target percentile summaries.`,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/llmperf/llmperf.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables.
func initConfig() {
	output.SetVerbose(verbose)

	configMgr = config.NewManager()

	// Skip config loading for config init command to avoid chicken-and-egg problem
	if len(os.Args) >= 3 && os.Args[1] == "config" && os.Args[2] == "init" {
		return
	}

	if err := configMgr.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}
