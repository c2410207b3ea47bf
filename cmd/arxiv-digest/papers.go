// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/store"
)

var papersCmd = &cobra.Command{
	Use:   "papers [arxivID]",
	Short: "List or show stored summaries for a date",
	Long: `Papers inspects the summary store. Without arguments it lists the arXiv
IDs stored for the given date; with an ID it prints that paper's summary as
JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPapers,
}

func init() {
	papersCmd.Flags().String("date", "", "date in YYYY-MM-DD form (default: today)")

	rootCmd.AddCommand(papersCmd)
}

func runPapers(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")

	ctx := context.Background()
	st, err := store.NewMinio(ctx, storeConfig(), time.Now)
	if err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	if len(args) == 0 {
		ids, err := st.ListIDs(ctx, date)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		fmt.Fprintf(os.Stderr, "%d paper(s)\n", len(ids))
		return nil
	}

	summary, err := st.Get(ctx, args[0], date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("paper %s not found", args[0])
		}
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
