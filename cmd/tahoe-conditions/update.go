package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mweston/tahoe-conditions/internal/fetch"
	"github.com/mweston/tahoe-conditions/internal/logging"
	"github.com/mweston/tahoe-conditions/internal/output"
	"github.com/mweston/tahoe-conditions/internal/pipeline"
	"github.com/mweston/tahoe-conditions/internal/registry"
	"github.com/mweston/tahoe-conditions/internal/weather"
)

var updateCommand = &cobra.Command{
	Use:   "update",
	Short: "Fetch and publish current conditions for all enabled resorts",
	Long: `Runs one full update cycle: loads the resort registry, fetches each
resort's conditions page (with caching, rate limiting, and retries),
parses it with the resort's adapter, enriches with an NWS forecast, and
writes per-resort JSON plus an aggregate summary to the output directory.

A resort whose fetch or parse fails keeps its last published conditions,
marked stale. The command only fails when the registry cannot be loaded
or no resorts are enabled.`,
	RunE: runUpdateCmd,
}

var (
	updateRegistryPath string
	updateCacheDir     string
	updateOutputDir    string
	updateNoCache      bool
	updateConcurrency  int
	updateVerbose      bool
)

func init() {
	updateCommand.Flags().StringVarP(&updateRegistryPath, "config", "c", "resorts.yaml", "Path to the resort registry YAML file")
	updateCommand.Flags().StringVar(&updateCacheDir, "cache-dir", ".cache", "Directory for cached fetches")
	updateCommand.Flags().StringVarP(&updateOutputDir, "output-dir", "o", "output", "Directory for published JSON")
	updateCommand.Flags().BoolVar(&updateNoCache, "no-cache", false, "Bypass the fetch cache and refetch every source")
	updateCommand.Flags().IntVar(&updateConcurrency, "concurrency", 1, "Number of resorts to process at once")
	updateCommand.Flags().BoolVarP(&updateVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(updateCommand)
}

func runUpdateCmd(cmd *cobra.Command, _ []string) error {
	if err := logging.Init(updateVerbose); err != nil {
		return err
	}
	defer logging.Sync()

	resorts, err := registry.LoadEnabled(updateRegistryPath)
	if err != nil {
		return fmt.Errorf("failed to load resort registry: %w", err)
	}
	if len(resorts) == 0 {
		return fmt.Errorf("no enabled resorts in %s", updateRegistryPath)
	}

	client := fetch.New(fetch.Config{CacheDir: updateCacheDir})
	store := output.NewStore(updateOutputDir)

	runner := pipeline.NewRunner(pipeline.Config{
		Client:      client,
		Weather:     weather.New(client),
		Store:       store,
		Concurrency: updateConcurrency,
		NoCache:     updateNoCache,
	})

	results := runner.Run(context.Background(), resorts)
	summary := output.GenerateSummary(results)
	if err := store.WriteAll(results, summary); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %d resorts (%d open, %d closed, %d stale) -> %s\n",
		len(results), summary.Counts.OpenResorts, summary.Counts.ClosedResorts,
		summary.Counts.StaleResorts, updateOutputDir)

	// Output is written above either way so the feed keeps its
	// carried-forward records, but a run where nothing updated is a
	// failure worth surfacing to the scheduler.
	if summary.Counts.StaleResorts == len(results) {
		return fmt.Errorf("all %d resorts failed to update", len(results))
	}
	return nil
}
