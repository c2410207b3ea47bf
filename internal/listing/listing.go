// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package listing scrapes the arXiv recent-submissions page into Paper records.
package listing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// listingDateRe captures the announcement date from the page heading,
// e.g. "New submissions for Mon, 12 Feb 2024".
var listingDateRe = regexp.MustCompile(`for ([A-Za-z]+, \d+ [A-Za-z]+ \d{4})`)

// listingDateLayout matches the heading date format.
const listingDateLayout = "Mon, 2 Jan 2006"

var whitespaceRe = regexp.MustCompile(`\s+`)

// ListRecent fetches the listing page named in cfg and parses it into Paper
// records in page order. A network or HTTP failure is returned as an error
// and aborts the run; malformed individual entries are skipped with a
// warning on w. No de-duplication happens here.
func ListRecent(ctx context.Context, client *http.Client, cfg types.ListingConfig, now types.NowFunc, w io.Writer) ([]types.Paper, error) {
	if now == nil {
		now = time.Now
	}

	resp, err := httputil.Get(ctx, client, cfg.URL, cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("fetching listing page %s: %w", cfg.URL, err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing listing page: %w", err)
	}

	base, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing listing URL: %w", err)
	}

	listedDate := parseListingDate(doc, now)

	dl := doc.Find("dl").First()
	if dl.Length() == 0 {
		fmt.Fprintln(w, "warning: no paper listings found on the page")
		return nil, nil
	}

	// Entries alternate between dt (links) and dd (metadata); pair them up.
	dts := dl.Find("dt")
	dds := dl.Find("dd")
	n := dts.Length()
	if dds.Length() != n {
		fmt.Fprintf(w, "warning: %d link blocks but %d metadata blocks, pairing the shorter\n", n, dds.Length())
		if dds.Length() < n {
			n = dds.Length()
		}
	}

	var papers []types.Paper
	for i := 0; i < n; i++ {
		p, ok := parseEntry(dts.Eq(i), dds.Eq(i), base, cfg.DefaultCategory, listedDate, w)
		if !ok {
			continue
		}
		papers = append(papers, p)
	}

	fmt.Fprintf(w, "scraped %d papers from %s\n", len(papers), cfg.URL)
	return papers, nil
}

// parseListingDate extracts the announcement date from the first h3 heading,
// falling back to the current date.
func parseListingDate(doc *goquery.Document, now types.NowFunc) time.Time {
	heading := doc.Find("h3").First().Text()
	if strings.Contains(heading, "New submissions") {
		if m := listingDateRe.FindStringSubmatch(heading); m != nil {
			if t, err := time.Parse(listingDateLayout, m[1]); err == nil {
				return t
			}
		}
	}
	return now()
}

// parseEntry builds one Paper from a dt/dd pair. The arXiv ID comes from the
// PDF link href, the only stable key on the page; entries without one are
// dropped.
func parseEntry(dt, dd *goquery.Selection, base *url.URL, defaultCategory string, listedDate time.Time, w io.Writer) (types.Paper, bool) {
	href, ok := dt.Find(`a[href^="/pdf/"]`).First().Attr("href")
	if !ok {
		fmt.Fprintln(w, "warning: entry has no PDF link, skipping")
		return types.Paper{}, false
	}

	arxivID := strings.TrimSpace(strings.TrimPrefix(href, "/pdf/"))
	if arxivID == "" {
		fmt.Fprintf(w, "warning: no arXiv ID in href %q, skipping\n", href)
		return types.Paper{}, false
	}

	ref, err := url.Parse(href)
	if err != nil {
		fmt.Fprintf(w, "warning: unparseable PDF href %q, skipping\n", href)
		return types.Paper{}, false
	}

	title := "Unknown Title"
	if sel := dd.Find(".list-title").First(); sel.Length() > 0 {
		title = collapseSpace(strings.TrimPrefix(strings.TrimSpace(sel.Text()), "Title:"))
	}

	var authors []string
	if sel := dd.Find(".list-authors").First(); sel.Length() > 0 {
		authors = splitTrim(strings.TrimPrefix(strings.TrimSpace(sel.Text()), "Authors:"), ",")
	}

	var abstract string
	if sel := dd.Find(".mathjax").First(); sel.Length() > 0 {
		abstract = collapseSpace(sel.Text())
	}

	categories := []string{defaultCategory}
	if sel := dd.Find(".list-subjects").First(); sel.Length() > 0 {
		if cats := splitTrim(strings.TrimPrefix(strings.TrimSpace(sel.Text()), "Subjects:"), ";"); len(cats) > 0 {
			categories = cats
		}
	}

	return types.Paper{
		ArxivID:       arxivID,
		Title:         title,
		Authors:       authors,
		Abstract:      abstract,
		PDFURL:        base.ResolveReference(ref).String(),
		PublishedDate: listedDate,
		Categories:    categories,
	}, true
}

// collapseSpace trims s and folds runs of whitespace into single spaces.
func collapseSpace(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// splitTrim splits s on sep and returns the trimmed non-empty parts.
func splitTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
