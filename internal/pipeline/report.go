// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// WriteLocalReport writes the run's newly stored summaries as one JSON array
// to dir/summaries_{date}.json and returns the path. This is a debugging
// side-channel; the object store remains authoritative.
func WriteLocalReport(dir, date string, summaries []*types.Summary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling summaries: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("summaries_%s.json", date))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
