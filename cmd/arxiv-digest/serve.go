// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/store"
	"github.com/pdiddy/arxiv-digest/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored summaries over a read-only web interface",
	Long: `Serve exposes the stored summaries: an HTML index of the day's papers,
GET /api/papers?date=YYYY-MM-DD for a day's summaries, and
GET /api/papers/{arxivID}?date=YYYY-MM-DD for one paper.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: configured serve.addr)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := store.NewMinio(context.Background(), storeConfig(), time.Now)
	if err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	cfg := serveConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	handler := web.NewHandler(st, time.Now)
	router := web.NewRouter(handler, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	fmt.Printf("Serving summaries on %s\n", cfg.Addr)
	return srv.ListenAndServe()
}
