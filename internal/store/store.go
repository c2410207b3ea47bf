// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists paper summaries as JSON objects keyed by date and
// arXiv ID.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var (
	// ErrNotFound reports an absent (date, id) pair. This is an expected
	// outcome on the read path, not a connectivity failure.
	ErrNotFound = errors.New("summary not found")

	// ErrNotConfigured reports missing object-store credentials.
	ErrNotConfigured = errors.New("object store not configured")
)

// defaultBucket is the container for summary objects.
const defaultBucket = "paper-summaries"

// ObjectClient abstracts the object-store SDK behind the four operations the
// store needs. Get returns ErrNotFound for absent keys, distinct from other
// errors.
type ObjectClient interface {
	EnsureBucket(ctx context.Context, bucket string) error
	Put(ctx context.Context, bucket, key string, data []byte) error
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	List(ctx context.Context, bucket, prefix string) ([]string, error)
}

// Store reads and writes summaries under keys of the form
// "{YYYY-MM-DD}/{arxivID}.json". Writes overwrite; there is no versioning.
type Store struct {
	client ObjectClient
	bucket string
	now    types.NowFunc
}

// New ensures the bucket exists and returns a Store over client. Bucket
// creation tolerates an already-existing bucket; any other failure is
// returned and the caller treats the store as unusable.
func New(ctx context.Context, client ObjectClient, cfg types.StoreConfig, now types.NowFunc) (*Store, error) {
	bucket := cfg.Bucket
	if bucket == "" {
		bucket = defaultBucket
	}
	if now == nil {
		now = time.Now
	}
	if err := client.EnsureBucket(ctx, bucket); err != nil {
		return nil, fmt.Errorf("ensuring bucket %s: %w", bucket, err)
	}
	return &Store{client: client, bucket: bucket, now: now}, nil
}

// Put stamps summary with today's date and the arXiv ID, then writes it
// under today's key. A second write for the same key replaces the first.
func (s *Store) Put(ctx context.Context, arxivID string, summary *types.Summary) error {
	date := types.DateKey(s.now())
	summary.StoredDate = date
	summary.ArxivID = arxivID

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary for %s: %w", arxivID, err)
	}

	if err := s.client.Put(ctx, s.bucket, objectKey(date, arxivID), data); err != nil {
		return fmt.Errorf("writing summary for %s: %w", arxivID, err)
	}
	return nil
}

// Get retrieves the summary stored for arxivID on date, defaulting to today
// when date is empty. Returns ErrNotFound when no such object exists.
func (s *Store) Get(ctx context.Context, arxivID, date string) (*types.Summary, error) {
	if date == "" {
		date = types.DateKey(s.now())
	}

	data, err := s.client.Get(ctx, s.bucket, objectKey(date, arxivID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading summary for %s: %w", arxivID, err)
	}

	var summary types.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("decoding summary for %s: %w", arxivID, err)
	}
	return &summary, nil
}

// ListIDs enumerates the arXiv IDs stored under date (defaulting to today),
// in store-enumeration order.
func (s *Store) ListIDs(ctx context.Context, date string) ([]string, error) {
	if date == "" {
		date = types.DateKey(s.now())
	}
	prefix := date + "/"

	keys, err := s.client.List(ctx, s.bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing summaries for %s: %w", date, err)
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, prefix)
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

func objectKey(date, arxivID string) string {
	return date + "/" + arxivID + ".json"
}
