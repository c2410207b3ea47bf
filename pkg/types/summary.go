// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// Summary is the structured summary produced by the model for one paper.
// The first seven fields mirror the JSON object requested from the model;
// SummarizedBy and Model are stamped by the summarizer, StoredDate and
// ArxivID by the store at write time.
type Summary struct {
	Title        string   `json:"title"`
	Authors      []string `json:"authors"`
	Summary      string   `json:"summary"`
	KeyPoints    []string `json:"key_points"`
	Methodology  string   `json:"methodology"`
	Results      string   `json:"results"`
	Implications string   `json:"implications"`

	SummarizedBy string `json:"summarized_by,omitempty"`
	Model        string `json:"model,omitempty"`

	StoredDate string `json:"stored_date,omitempty"`
	ArxivID    string `json:"arxiv_id,omitempty"`
}

// ErrInvalidSummary reports a summary that parsed as JSON but does not
// satisfy the required schema.
var ErrInvalidSummary = errors.New("invalid summary")

// Validate checks that the model returned the required fields. Models
// occasionally emit valid JSON with fields missing or empty; those
// responses are rejected here rather than stored half-formed.
func (s *Summary) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidSummary)
	}
	if strings.TrimSpace(s.Summary) == "" {
		return fmt.Errorf("%w: missing summary", ErrInvalidSummary)
	}
	if len(s.KeyPoints) == 0 {
		return fmt.Errorf("%w: no key points", ErrInvalidSummary)
	}
	return nil
}
