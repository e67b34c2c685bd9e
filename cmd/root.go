// Package cmd holds the CLI commands for the evaluation service.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "evalsvc",
	Short: "AI agent evaluation ingestion service",
	Long:  "Ingests evaluation records from an AI-agent runtime, enforcing sampling, a daily quota and PII redaction policy.",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
