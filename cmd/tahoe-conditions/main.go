// Package main provides the entry point for the Tahoe conditions pipeline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tahoe-conditions",
	Short: "Lake Tahoe ski resort conditions aggregator",
	Long:  "tahoe-conditions fetches lift, trail, and snow conditions from resort websites, enriches them with NWS forecasts, and publishes JSON suitable for a static conditions page.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
