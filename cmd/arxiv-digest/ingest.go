// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/listing"
	"github.com/pdiddy/arxiv-digest/internal/pdftext"
	"github.com/pdiddy/arxiv-digest/internal/pipeline"
	"github.com/pdiddy/arxiv-digest/internal/runlog"
	"github.com/pdiddy/arxiv-digest/internal/store"
	"github.com/pdiddy/arxiv-digest/internal/summarize"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "arxiv-digest/0.1"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Scrape, summarize, and store today's papers",
	Long: `Ingest runs one pass of the pipeline: scrape the recent-submissions
listing, then for each paper download the PDF, extract its text, request a
structured summary, and store it. Papers already stored today are skipped,
so re-running on the same day does no redundant work.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().Duration("timeout", 0, "HTTP request timeout for listing and downloads (default 60s)")
	ingestCmd.Flags().String("url", "", "listing page URL (default: configured listing.url)")
	ingestCmd.Flags().String("output-dir", "output", "directory for the local summaries report")
	ingestCmd.Flags().String("metadata-dir", "", "directory for per-paper YAML metadata records (disabled when empty)")
	ingestCmd.Flags().String("ledger", "output/runs.db", "run ledger database path (empty disables the ledger)")

	rootCmd.AddCommand(ingestCmd)
}

// pipelineConfig assembles the per-stage settings for one ingestion run from
// flags, config, and secrets.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	outputDir, _ := cmd.Flags().GetString("output-dir")
	metadataDir, _ := cmd.Flags().GetString("metadata-dir")

	httpCfg := types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent}
	cfg := types.PipelineConfig{
		Listing: types.ListingConfig{
			HTTPConfig:      httpCfg,
			URL:             viper.GetString("listing.url"),
			DefaultCategory: viper.GetString("listing.default_category"),
		},
		Fetch:       types.FetchConfig{HTTPConfig: httpCfg},
		Summarize:   summarizeConfig(),
		Store:       storeConfig(),
		OutputDir:   outputDir,
		MetadataDir: metadataDir,
	}
	if url, _ := cmd.Flags().GetString("url"); url != "" {
		cfg.Listing.URL = url
	}
	return cfg
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	ledgerPath, _ := cmd.Flags().GetString("ledger")

	// A SIGINT between items stops the run at the next item boundary.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Both collaborators must be ready before anything is listed.
	backend, err := summarize.NewAzureBackend(&http.Client{Timeout: cfg.Summarize.Timeout}, cfg.Summarize)
	if err != nil {
		return fmt.Errorf("summarizer not ready: %w", err)
	}
	summarizer := summarize.New(backend, cfg.Summarize)

	st, err := store.NewMinio(ctx, cfg.Store, time.Now)
	if err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	client := &http.Client{Timeout: cfg.Listing.Timeout}
	p := &pipeline.Pipeline{
		List: func(ctx context.Context) ([]types.Paper, error) {
			return listing.ListRecent(ctx, client, cfg.Listing, time.Now, os.Stdout)
		},
		Fetch:       pdftext.NewFetcher(client, cfg.Fetch),
		Summarize:   summarizer,
		Store:       st,
		MetadataDir: cfg.MetadataDir,
	}

	started := time.Now()
	result, runErr := p.Run(ctx, os.Stdout)
	finished := time.Now()

	if ledgerPath != "" {
		if err := recordRun(ledgerPath, started, finished, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: recording run: %v\n", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if len(result.Summaries) > 0 {
		path, err := pipeline.WriteLocalReport(cfg.OutputDir, types.DateKey(finished), result.Summaries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: writing report: %v\n", err)
		} else {
			fmt.Printf("Wrote %d summaries to %s\n", len(result.Summaries), path)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d paper(s) failed", result.Failed)
	}
	return nil
}

func recordRun(ledgerPath string, started, finished time.Time, result pipeline.Result) error {
	ledger, err := runlog.Open(ledgerPath)
	if err != nil {
		return err
	}
	defer ledger.Close()

	runID, err := ledger.Record(context.Background(), started, finished, result)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded run %s\n", runID)
	return nil
}
