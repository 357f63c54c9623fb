// Package main provides the entry point for the job-coach HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobcoach",
	Short: "Job-coach HTTP API server",
	Long:  "Job-coach scrapes job postings, structures them with an LLM and runs a session-scoped assistant that coaches applicants on their self-introduction answers.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
