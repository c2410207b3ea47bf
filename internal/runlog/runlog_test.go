// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/internal/pipeline"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "ledger", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	started := time.Date(2024, 2, 13, 6, 0, 0, 0, time.UTC)
	finished := started.Add(3 * time.Minute)

	result := pipeline.Result{
		Listed:  3,
		Stored:  1,
		Skipped: 1,
		Failed:  1,
		Items: []pipeline.ItemResult{
			{ArxivID: "2402.0A", Outcome: pipeline.OutcomeSkipped},
			{ArxivID: "2402.0B", Outcome: pipeline.OutcomeFailed, Detail: "download error"},
			{ArxivID: "2402.0C", Outcome: pipeline.OutcomeStored},
		},
	}

	runID, err := l.Record(ctx, started, finished, result)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	runs, err := l.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, runID, got.ID)
	assert.True(t, got.StartedAt.Equal(started))
	assert.True(t, got.FinishedAt.Equal(finished))
	assert.Equal(t, 3, got.Listed)
	assert.Equal(t, 1, got.Stored)
	assert.Equal(t, 1, got.Skipped)
	assert.Equal(t, 1, got.Failed)

	items, err := l.Items(ctx, runID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, pipeline.OutcomeFailed, items[1].Outcome)
	assert.Equal(t, "download error", items[1].Detail)
}

func TestRecent_NewestFirstAndLimited(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	base := time.Date(2024, 2, 10, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		start := base.AddDate(0, 0, i)
		_, err := l.Record(ctx, start, start.Add(time.Minute), pipeline.Result{Listed: i})
		require.NoError(t, err)
	}

	runs, err := l.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 2, runs[0].Listed)
	assert.Equal(t, 1, runs[1].Listed)
}

func TestItems_UnknownRun(t *testing.T) {
	l := openTestLog(t)

	items, err := l.Items(context.Background(), "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpen_Reopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	l, err := Open(path)
	require.NoError(t, err)
	_, err = l.Record(context.Background(), time.Now(), time.Now(), pipeline.Result{Listed: 1})
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l2, err := Open(path)
	require.NoError(t, err)
	defer l2.Close()

	runs, err := l2.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
