// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Paper holds the metadata scraped for one listed paper.
type Paper struct {
	// ArxivID is the stable identifier extracted from the PDF link
	// (e.g. "2301.07041"). It is the only key used for storage.
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title, "Unknown Title" when the listing omits it.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in listing order. May be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the listing abstract. May be empty.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PDFURL is the absolute URL of the paper's PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// PublishedDate is the listing date announced on the page, or the
	// scrape date when the page heading could not be parsed.
	PublishedDate time.Time `json:"published_date" yaml:"published_date"`

	// Categories holds the subject tags, never empty (the configured
	// default category is used when the listing omits them).
	Categories []string `json:"categories" yaml:"categories"`
}
