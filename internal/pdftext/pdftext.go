// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext downloads a paper's PDF and extracts its plain text.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// ErrNoText reports a PDF whose pages yield no extractable text, typically
// a scanned document with no text layer.
var ErrNoText = errors.New("PDF contains no extractable text")

// extractor turns a PDF file on disk into plain text. The production
// implementation parses the PDF; tests substitute fakes.
type extractor interface {
	extract(path string) (string, error)
}

// Fetcher downloads PDFs and extracts their text. All failures are
// per-item: the caller logs and moves on to the next paper.
type Fetcher struct {
	client *http.Client
	cfg    types.FetchConfig
	ext    extractor
}

// NewFetcher returns a Fetcher using the given client, whose timeout bounds
// each download.
func NewFetcher(client *http.Client, cfg types.FetchConfig) *Fetcher {
	return &Fetcher{client: client, cfg: cfg, ext: pdfExtractor{}}
}

// FetchText downloads url to a temporary file, extracts the text page by
// page, and returns it. The temporary file is removed on every path.
// Returns ErrNoText when the document has no text layer.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	resp, err := httputil.Get(ctx, f.client, url, f.cfg.UserAgent)
	if err != nil {
		return "", fmt.Errorf("download error: %w", err)
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "arxiv-digest-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil {
		return "", fmt.Errorf("download error: %w", copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("writing temp file: %w", closeErr)
	}

	text, err := f.ext.extract(tmpPath)
	if err != nil {
		return "", fmt.Errorf("PDF processing error: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// pdfExtractor extracts text with the pdf package, concatenating pages in
// order.
type pdfExtractor struct{}

func (pdfExtractor) extract(path string) (text string, err error) {
	// The pdf package can panic on malformed documents; turn that into an
	// error so one bad paper does not kill the run.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing PDF: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting page %d: %w", i, err)
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}
