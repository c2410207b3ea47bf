// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves stored summaries over a small read-only HTTP surface.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pdiddy/arxiv-digest/internal/store"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// SummaryReader is the read slice of the store the web surface needs.
type SummaryReader interface {
	Get(ctx context.Context, arxivID, date string) (*types.Summary, error)
	ListIDs(ctx context.Context, date string) ([]string, error)
}

// Handler serves the summary read endpoints.
type Handler struct {
	store SummaryReader
	now   types.NowFunc
}

// NewHandler returns a Handler reading from st, with now resolving the
// default date.
func NewHandler(st SummaryReader, now types.NowFunc) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{store: st, now: now}
}

// NewRouter wires the read surface: a JSON API, an HTML index, and a health
// check.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/", h.Index)
	r.Get("/api/papers", h.ListPapers)
	r.Get("/api/papers/{arxivID}", h.GetPaper)

	return r
}

// papersForDate loads every summary stored for date, sorted by title.
// Individual read failures are dropped rather than failing the page.
func (h *Handler) papersForDate(ctx context.Context, date string) ([]*types.Summary, error) {
	ids, err := h.store.ListIDs(ctx, date)
	if err != nil {
		return nil, err
	}

	papers := make([]*types.Summary, 0, len(ids))
	for _, id := range ids {
		summary, err := h.store.Get(ctx, id, date)
		if err != nil {
			continue
		}
		papers = append(papers, summary)
	}

	sort.Slice(papers, func(i, j int) bool { return papers[i].Title < papers[j].Title })
	return papers, nil
}

// requestDate resolves the ?date= query parameter, defaulting to today.
func (h *Handler) requestDate(r *http.Request) string {
	if date := r.URL.Query().Get("date"); date != "" {
		return date
	}
	return types.DateKey(h.now())
}

// ListPapers serves GET /api/papers?date=YYYY-MM-DD.
func (h *Handler) ListPapers(w http.ResponseWriter, r *http.Request) {
	date := h.requestDate(r)

	papers, err := h.papersForDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "listing papers failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"date":   date,
		"papers": papers,
		"count":  len(papers),
	})
}

// GetPaper serves GET /api/papers/{arxivID}?date=YYYY-MM-DD.
func (h *Handler) GetPaper(w http.ResponseWriter, r *http.Request) {
	arxivID := chi.URLParam(r, "arxivID")
	date := h.requestDate(r)

	summary, err := h.store.Get(r.Context(), arxivID, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, fmt.Sprintf("paper %s not found for %s", arxivID, date))
			return
		}
		respondError(w, http.StatusInternalServerError, "reading paper failed")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Index serves a minimal HTML listing of the day's summaries.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	date := h.requestDate(r)

	papers, err := h.papersForDate(r.Context(), date)
	if err != nil {
		http.Error(w, "listing papers failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	indexTmpl.Execute(w, struct {
		Date   string
		Papers []*types.Summary
	}{date, papers})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>arXiv Paper Summaries</title></head>
<body>
<h1>arXiv Paper Summaries</h1>
<p>{{.Date}} &mdash; {{len .Papers}} paper(s)</p>
{{range .Papers}}
<article>
  <h2>{{.Title}}</h2>
  <p><em>{{range $i, $a := .Authors}}{{if $i}}, {{end}}{{$a}}{{end}}</em></p>
  <p>{{.Summary}}</p>
  {{if .KeyPoints}}<ul>{{range .KeyPoints}}<li>{{.}}</li>{{end}}</ul>{{end}}
</article>
{{end}}
</body>
</html>
`))
