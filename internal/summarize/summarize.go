// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize asks a language-model service for structured paper summaries.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var (
	// ErrNotConfigured reports a missing endpoint or API key. This is a
	// configuration failure, not a retryable one.
	ErrNotConfigured = errors.New("summarization backend not configured")

	// ErrMalformedSummary reports a model response that is not valid JSON
	// or does not satisfy the summary schema.
	ErrMalformedSummary = errors.New("malformed summary response")
)

// defaultMaxContentLen bounds the extracted text sent with one request.
const defaultMaxContentLen = 8000

// truncationMarker is appended when content is cut at the maximum length.
const truncationMarker = "..."

// Backend abstracts the model API so tests can supply a mock. One call,
// one response; the pipeline never retries a failed request.
type Backend interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Summarizer produces structured summaries through a Backend.
type Summarizer struct {
	backend       Backend
	model         string
	maxContentLen int
}

// New returns a Summarizer using backend. The Deployment name from cfg is
// stamped onto each summary as provenance.
func New(backend Backend, cfg types.SummarizeConfig) *Summarizer {
	maxLen := cfg.MaxContentLen
	if maxLen <= 0 {
		maxLen = defaultMaxContentLen
	}
	return &Summarizer{
		backend:       backend,
		model:         cfg.Deployment,
		maxContentLen: maxLen,
	}
}

// Summarize sends one summarization request for a paper's extracted text and
// returns the parsed, validated summary. Content beyond the configured
// maximum is dropped, so summaries of very long papers reflect only the
// leading portion of the text.
func (s *Summarizer) Summarize(ctx context.Context, paper types.Paper, content string) (*types.Summary, error) {
	if s.backend == nil {
		return nil, ErrNotConfigured
	}

	user, err := renderUserPrompt(paper.Title, strings.Join(paper.Authors, ", "), Truncate(content, s.maxContentLen))
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	raw, err := s.backend.Complete(ctx, systemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("summarization request: %w", err)
	}

	var summary types.Summary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSummary, err)
	}
	if err := summary.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSummary, err)
	}

	summary.SummarizedBy = "Azure OpenAI"
	summary.Model = s.model
	return &summary, nil
}

// Truncate returns content cut to at most max bytes with the truncation
// marker appended; content at or under max is returned unmodified. The cut
// backs off to a rune boundary so the prompt never carries a split rune.
func Truncate(content string, max int) string {
	if len(content) <= max {
		return content
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + truncationMarker
}
