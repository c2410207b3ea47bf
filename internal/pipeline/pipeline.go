// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline composes listing, fetching, summarization, and storage
// into one ingestion run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/internal/store"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Lister fetches and parses the listing page once per run.
type Lister func(ctx context.Context) ([]types.Paper, error)

// Fetcher downloads a PDF and extracts its text.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Summarizer produces a structured summary for one paper.
type Summarizer interface {
	Summarize(ctx context.Context, paper types.Paper, content string) (*types.Summary, error)
}

// SummaryStore is the slice of the store the pipeline needs: the skip check
// and the write.
type SummaryStore interface {
	Get(ctx context.Context, arxivID, date string) (*types.Summary, error)
	Put(ctx context.Context, arxivID string, summary *types.Summary) error
}

// Pipeline runs the ingestion sequence. Items are processed strictly in
// listing order, one at a time; a per-item failure skips that item and the
// run continues.
type Pipeline struct {
	List      Lister
	Fetch     Fetcher
	Summarize Summarizer
	Store     SummaryStore

	// MetadataDir, when set, receives one YAML metadata record per stored
	// paper.
	MetadataDir string
}

// Outcome classifies what happened to one listed paper.
type Outcome string

const (
	OutcomeStored  Outcome = "stored"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// ItemResult records the outcome for one paper.
type ItemResult struct {
	ArxivID string
	Outcome Outcome
	Detail  string
}

// Result aggregates one run.
type Result struct {
	Listed  int
	Stored  int
	Skipped int
	Failed  int

	// Items records the per-paper outcomes in listing order.
	Items []ItemResult

	// Summaries holds the newly stored summaries in processing order.
	Summaries []*types.Summary
}

// HasFailures reports whether any paper failed during the run.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

func (r *Result) fail(w io.Writer, arxivID string, err error) {
	fmt.Fprintf(w, "failed:  %s (%v)\n", arxivID, err)
	r.Failed++
	r.Items = append(r.Items, ItemResult{ArxivID: arxivID, Outcome: OutcomeFailed, Detail: err.Error()})
}

// Run executes one ingestion pass, writing per-item status to w. A listing
// failure aborts the run; everything after that is contained at the item
// boundary. Cancellation is checked between items.
func (p *Pipeline) Run(ctx context.Context, w io.Writer) (Result, error) {
	papers, err := p.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("listing papers: %w", err)
	}

	result := Result{Listed: len(papers)}

	for i, paper := range papers {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fmt.Fprintf(w, "processing %d/%d: %s\n", i+1, len(papers), paper.ArxivID)

		// Skip papers already stored today so re-running the pipeline on
		// the same day does no redundant work.
		if _, err := p.Store.Get(ctx, paper.ArxivID, ""); err == nil {
			fmt.Fprintf(w, "skipped: %s (already stored today)\n", paper.ArxivID)
			result.Skipped++
			result.Items = append(result.Items, ItemResult{ArxivID: paper.ArxivID, Outcome: OutcomeSkipped})
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(w, "warning: skip check for %s failed: %v\n", paper.ArxivID, err)
		}

		text, err := p.Fetch.FetchText(ctx, paper.PDFURL)
		if err != nil {
			result.fail(w, paper.ArxivID, err)
			continue
		}

		summary, err := p.Summarize.Summarize(ctx, paper, text)
		if err != nil {
			result.fail(w, paper.ArxivID, err)
			continue
		}

		if err := p.Store.Put(ctx, paper.ArxivID, summary); err != nil {
			result.fail(w, paper.ArxivID, err)
			continue
		}

		if p.MetadataDir != "" {
			if err := writePaperMetadata(p.MetadataDir, paper); err != nil {
				fmt.Fprintf(w, "warning: metadata for %s: %v\n", paper.ArxivID, err)
			}
		}

		result.Stored++
		result.Items = append(result.Items, ItemResult{ArxivID: paper.ArxivID, Outcome: OutcomeStored})
		result.Summaries = append(result.Summaries, summary)
		fmt.Fprintf(w, "stored:  %s\n", paper.ArxivID)
	}

	fmt.Fprintf(w, "\nRun summary: %d listed, %d stored, %d skipped, %d failed\n",
		result.Listed, result.Stored, result.Skipped, result.Failed)
	return result, nil
}

// writePaperMetadata records the scraped listing metadata for one paper as a
// YAML sidecar, the local counterpart of the stored summary object.
func writePaperMetadata(dir string, paper types.Paper) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}
	data, err := yaml.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, paper.ArxivID+".yaml"), data, 0o644)
}
