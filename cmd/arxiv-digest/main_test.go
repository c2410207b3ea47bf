// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("serve.addr", ":9090")
	viper.Set("serve.read_timeout", "10s")
	viper.Set("serve.write_timeout", "20s")
	viper.Set("serve.allowed_origins", []string{"https://example.com"})

	cfg := serveConfig()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 20*time.Second, cfg.WriteTimeout)
	assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
}

func TestPipelineConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("listing.url", "https://arxiv.org/list/cs.LG/recent")
	viper.Set("listing.default_category", "cs.LG")
	viper.Set("summarize.deployment", "gpt-4o")
	viper.Set("store.bucket", "paper-summaries")

	require.NoError(t, ingestCmd.Flags().Set("metadata-dir", "meta"))
	t.Cleanup(func() { ingestCmd.Flags().Set("metadata-dir", "") })

	cfg := pipelineConfig(ingestCmd)

	assert.Equal(t, "https://arxiv.org/list/cs.LG/recent", cfg.Listing.URL)
	assert.Equal(t, "cs.LG", cfg.Listing.DefaultCategory)
	assert.Equal(t, defaultTimeout, cfg.Listing.Timeout)
	assert.Equal(t, defaultUserAgent, cfg.Listing.UserAgent)
	assert.Equal(t, defaultTimeout, cfg.Fetch.Timeout)
	assert.Equal(t, "gpt-4o", cfg.Summarize.Deployment)
	assert.Equal(t, "paper-summaries", cfg.Store.Bucket)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "meta", cfg.MetadataDir)
}

func TestPipelineConfig_URLFlagOverridesConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("listing.url", "https://arxiv.org/list/cs.LG/recent")

	require.NoError(t, ingestCmd.Flags().Set("url", "https://arxiv.org/list/cs.CL/recent"))
	t.Cleanup(func() { ingestCmd.Flags().Set("url", "") })

	cfg := pipelineConfig(ingestCmd)
	assert.Equal(t, "https://arxiv.org/list/cs.CL/recent", cfg.Listing.URL)
}
