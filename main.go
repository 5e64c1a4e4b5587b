package main

import "llmperf/cmd"

// main starts the llmperf CLI by delegating to the cobra root command.
func main() {
	cmd.Execute()
}
