// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// mockBackend captures the prompts and returns a canned response.
type mockBackend struct {
	response  string
	err       error
	gotSystem string
	gotUser   string
	callCount int
}

func (m *mockBackend) Complete(_ context.Context, system, user string) (string, error) {
	m.callCount++
	m.gotSystem = system
	m.gotUser = user
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

const validResponse = `{
	"title": "Deep Learning for Everything",
	"authors": ["Alice Smith", "Bob Jones"],
	"summary": "A thorough study of applying deep learning broadly.",
	"key_points": ["point one", "point two", "point three"],
	"methodology": "Large transformers.",
	"results": "State of the art on all benchmarks.",
	"implications": "Everything changes."
}`

func testPaper() types.Paper {
	return types.Paper{
		ArxivID: "2402.01001",
		Title:   "Deep Learning for Everything",
		Authors: []string{"Alice Smith", "Bob Jones"},
	}
}

func testConfig() types.SummarizeConfig {
	return types.SummarizeConfig{Deployment: "gpt-4o"}
}

func TestSummarize_Success(t *testing.T) {
	backend := &mockBackend{response: validResponse}
	s := New(backend, testConfig())

	summary, err := s.Summarize(context.Background(), testPaper(), "the paper text")
	require.NoError(t, err)

	assert.Equal(t, "Deep Learning for Everything", summary.Title)
	assert.Len(t, summary.KeyPoints, 3)
	assert.Equal(t, "Azure OpenAI", summary.SummarizedBy)
	assert.Equal(t, "gpt-4o", summary.Model)

	assert.Contains(t, backend.gotUser, "Title: Deep Learning for Everything")
	assert.Contains(t, backend.gotUser, "Authors: Alice Smith, Bob Jones")
	assert.Contains(t, backend.gotUser, "the paper text")
	assert.Contains(t, backend.gotSystem, "summarizing academic machine learning papers")
}

func TestSummarize_NoBackend(t *testing.T) {
	s := New(nil, testConfig())

	_, err := s.Summarize(context.Background(), testPaper(), "text")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestSummarize_MalformedJSON(t *testing.T) {
	backend := &mockBackend{response: "I'm sorry, I cannot summarize this paper."}
	s := New(backend, testConfig())

	_, err := s.Summarize(context.Background(), testPaper(), "text")
	require.ErrorIs(t, err, ErrMalformedSummary)
}

func TestSummarize_SchemaViolation(t *testing.T) {
	// Valid JSON with an empty summary must be rejected, not stored.
	backend := &mockBackend{response: `{"title": "T", "summary": "", "key_points": []}`}
	s := New(backend, testConfig())

	_, err := s.Summarize(context.Background(), testPaper(), "text")
	require.ErrorIs(t, err, ErrMalformedSummary)
	assert.ErrorIs(t, err, types.ErrInvalidSummary)
}

func TestSummarize_RequestErrorSingleAttempt(t *testing.T) {
	backend := &mockBackend{err: errors.New("503 service unavailable")}
	s := New(backend, testConfig())

	_, err := s.Summarize(context.Background(), testPaper(), "text")
	require.Error(t, err)
	assert.Equal(t, 1, backend.callCount)
}

func TestSummarize_TruncatesLongContent(t *testing.T) {
	backend := &mockBackend{response: validResponse}
	cfg := testConfig()
	cfg.MaxContentLen = 100
	s := New(backend, cfg)

	long := strings.Repeat("a", 250)
	_, err := s.Summarize(context.Background(), testPaper(), long)
	require.NoError(t, err)

	assert.Contains(t, backend.gotUser, strings.Repeat("a", 100)+truncationMarker)
	assert.NotContains(t, backend.gotUser, strings.Repeat("a", 101))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		max     int
		want    string
	}{
		{"under max unchanged", "short", 10, "short"},
		{"at max unchanged", "exact", 5, "exact"},
		{"over max cut with marker", "longtext", 4, "long" + truncationMarker},
		{"empty", "", 5, ""},
		{"cut backs off split two-byte rune", "aé", 2, "a" + truncationMarker},
		{"cut backs off split three-byte rune", "日本", 4, "日" + truncationMarker},
		{"cut on rune boundary keeps rune", "日本語", 6, "日本" + truncationMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.content, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
