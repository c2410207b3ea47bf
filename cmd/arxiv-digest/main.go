// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-digest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/secrets"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the arxiv-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-digest",
	Short: "Daily summaries of recent machine-learning papers from arXiv",
	Long: `arxiv-digest scrapes the arXiv recent-submissions listing, downloads each
paper's PDF, asks a language model for a structured summary, and stores the
summaries as JSON objects keyed by date and arXiv ID.

The ingest subcommand runs one ingestion pass; serve exposes the stored
summaries over a read-only web interface; papers and runs inspect the store
and the local run ledger.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-digest.yaml or ~/.config/arxiv-digest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-digest"))
		}
	}

	viper.SetDefault("listing.url", "https://arxiv.org/list/cs.LG/recent")
	viper.SetDefault("listing.default_category", "cs.LG")
	viper.SetDefault("summarize.deployment", "gpt-4o")
	viper.SetDefault("summarize.api_version", "2023-05-15")
	viper.SetDefault("summarize.max_content_len", 8000)
	viper.SetDefault("summarize.timeout", 2*time.Minute)
	viper.SetDefault("store.bucket", "paper-summaries")
	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("serve.read_timeout", 15*time.Second)
	viper.SetDefault("serve.write_timeout", 15*time.Second)

	viper.SetEnvPrefix("ARXIV_DIGEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// storeConfig assembles the object-store settings from config and secrets.
func storeConfig() types.StoreConfig {
	return types.StoreConfig{
		Endpoint:  secrets.Resolve(loadedSecrets, "s3-endpoint", viper.GetString("store.endpoint")),
		AccessKey: secrets.Resolve(loadedSecrets, "s3-access-key", viper.GetString("store.access_key")),
		SecretKey: secrets.Resolve(loadedSecrets, "s3-secret-key", viper.GetString("store.secret_key")),
		UseSSL:    viper.GetBool("store.use_ssl"),
		Bucket:    viper.GetString("store.bucket"),
	}
}

// serveConfig assembles the web-surface settings from config.
func serveConfig() types.ServeConfig {
	return types.ServeConfig{
		Addr:           viper.GetString("serve.addr"),
		ReadTimeout:    viper.GetDuration("serve.read_timeout"),
		WriteTimeout:   viper.GetDuration("serve.write_timeout"),
		AllowedOrigins: viper.GetStringSlice("serve.allowed_origins"),
	}
}

// summarizeConfig assembles the model-API settings from config and secrets.
func summarizeConfig() types.SummarizeConfig {
	return types.SummarizeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("summarize.timeout"),
			UserAgent: defaultUserAgent,
		},
		Endpoint:      secrets.Resolve(loadedSecrets, "azure-openai-endpoint", viper.GetString("summarize.endpoint")),
		APIKey:        secrets.Resolve(loadedSecrets, "azure-openai-api-key", viper.GetString("summarize.api_key")),
		Deployment:    viper.GetString("summarize.deployment"),
		APIVersion:    viper.GetString("summarize.api_version"),
		MaxContentLen: viper.GetInt("summarize.max_content_len"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
