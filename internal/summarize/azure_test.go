// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func azureConfig(endpoint string) types.SummarizeConfig {
	return types.SummarizeConfig{
		Endpoint:   endpoint,
		APIKey:     "test-key",
		Deployment: "gpt-4o",
		APIVersion: "2023-05-15",
	}
}

func TestNewAzureBackend_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.SummarizeConfig
	}{
		{"missing endpoint", types.SummarizeConfig{APIKey: "k"}},
		{"missing key", types.SummarizeConfig{Endpoint: "https://example.openai.azure.com"}},
		{"missing both", types.SummarizeConfig{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAzureBackend(http.DefaultClient, tt.cfg)
			assert.ErrorIs(t, err, ErrNotConfigured)
		})
	}
}

func TestAzureBackend_Complete(t *testing.T) {
	var gotPath, gotKey string
	var gotBody chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"choices": [{"message": {"role": "assistant", "content": "{\"ok\": true}"}}]}`)
	}))
	defer ts.Close()

	backend, err := NewAzureBackend(ts.Client(), azureConfig(ts.URL))
	require.NoError(t, err)

	content, err := backend.Complete(context.Background(), "system text", "user text")
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, content)

	assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions?api-version=2023-05-15", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.Equal(t, 0.2, gotBody.Temperature)
	require.NotNil(t, gotBody.ResponseFormat)
	assert.Equal(t, "json_object", gotBody.ResponseFormat.Type)
}

func TestAzureBackend_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "rate limit"}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	backend, err := NewAzureBackend(ts.Client(), azureConfig(ts.URL))
	require.NoError(t, err)

	_, err = backend.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAzureBackend_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer ts.Close()

	backend, err := NewAzureBackend(ts.Client(), azureConfig(ts.URL))
	require.NoError(t, err)

	_, err = backend.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
