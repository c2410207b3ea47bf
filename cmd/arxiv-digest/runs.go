// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/runlog"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded ingestion runs",
	Long: `Runs reads the local run ledger. Without flags it lists recent runs;
with --id it prints the per-paper outcomes of one run.`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().String("ledger", "output/runs.db", "run ledger database path")
	runsCmd.Flags().Int("limit", 10, "maximum number of runs to list")
	runsCmd.Flags().String("id", "", "show per-paper outcomes for one run")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	ledgerPath, _ := cmd.Flags().GetString("ledger")
	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetString("id")

	ledger, err := runlog.Open(ledgerPath)
	if err != nil {
		return err
	}
	defer ledger.Close()

	ctx := context.Background()

	if runID != "" {
		items, err := ledger.Items(ctx, runID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.Detail != "" {
				fmt.Printf("%-8s %s (%s)\n", item.Outcome, item.ArxivID, item.Detail)
				continue
			}
			fmt.Printf("%-8s %s\n", item.Outcome, item.ArxivID)
		}
		return nil
	}

	runs, err := ledger.Recent(ctx, limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  listed=%d stored=%d skipped=%d failed=%d\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime),
			r.Listed, r.Stored, r.Skipped, r.Failed)
	}
	return nil
}
