// Copyright 2025 Hydrostack Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	raserrors "github.com/hydrostack/ras-compute/pkg/errors"
	"github.com/hydrostack/ras-compute/pkg/messages"
	"github.com/hydrostack/ras-compute/pkg/orchestrator"
	"github.com/hydrostack/ras-compute/pkg/result"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRun(id string) *orchestrator.Run {
	vol := 0.015
	table := result.NewTable()

	row := result.NewRow("01", messages.Summary{Completed: true}, &messages.RuntimeSummary{VolErrorPercent: &vol})
	row.Title = "Baseline"
	table.Append(row)

	firstErr := "ERROR: matrix solution failed"
	table.Append(result.NewRow("02", messages.Summary{
		Completed:      true,
		HasErrors:      true,
		ErrorCount:     1,
		FirstErrorLine: &firstErr,
	}, nil))

	return &orchestrator.Run{
		ID:        id,
		Project:   "/projects/muncie",
		StartedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Duration:  90 * time.Second,
		Result: result.NewComputeParallelResult(
			map[string]bool{"01": true, "02": false},
			table,
		),
	}
}

func TestRecordAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, testRun("run-1")))

	rec, err := s.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", rec.ID)
	assert.Equal(t, "/projects/muncie", rec.Project)
	assert.Equal(t, 90*time.Second, rec.Duration)
	assert.False(t, rec.AllSuccessful)
	require.Len(t, rec.Plans, 2)

	p1 := rec.Plans[0]
	assert.Equal(t, "01", p1.Row.Plan)
	assert.Equal(t, "Baseline", p1.Row.Title)
	assert.True(t, p1.Success)
	assert.True(t, p1.Row.Completed)
	require.NotNil(t, p1.Row.VolErrorPercent)
	assert.InDelta(t, 0.015, *p1.Row.VolErrorPercent, 1e-9)
	assert.Nil(t, p1.Row.FirstErrorLine)

	p2 := rec.Plans[1]
	assert.False(t, p2.Success)
	assert.Equal(t, 1, p2.Row.ErrorCount)
	require.NotNil(t, p2.Row.FirstErrorLine)
	assert.Equal(t, "ERROR: matrix solution failed", *p2.Row.FirstErrorLine)
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "no-such-run")
	require.Error(t, err)

	var se *raserrors.StructuredError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, raserrors.ErrCodeNotFound, se.Code)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := testRun("run-old")
	older.StartedAt = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := testRun("run-new")
	newer.StartedAt = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, older))
	require.NoError(t, s.Record(ctx, newer))

	records, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-new", records[0].ID)
	assert.Equal(t, "run-old", records[1].ID)
	// List returns summaries only.
	assert.Empty(t, records[0].Plans)
}

func TestListLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		run := testRun(string(rune('a' + i)))
		run.StartedAt = run.StartedAt.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.Record(ctx, run))
	}

	records, err := s.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRecordDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, testRun("run-1")))
	require.Error(t, s.Record(ctx, testRun("run-1")))
}

func TestGetRunWithoutRowFallsBackToPlanOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// An executor failure produces a success entry but no table row.
	run := &orchestrator.Run{
		ID:        "run-bare",
		Project:   "/projects/muncie",
		StartedAt: time.Now().UTC(),
		Result: result.NewComputeParallelResult(
			map[string]bool{"07": false},
			result.NewTable(),
		),
	}
	require.NoError(t, s.Record(ctx, run))

	rec, err := s.Get(ctx, "run-bare")
	require.NoError(t, err)
	require.Len(t, rec.Plans, 1)
	assert.Equal(t, "07", rec.Plans[0].Row.Plan)
	assert.False(t, rec.Plans[0].Success)
	assert.False(t, rec.Plans[0].Row.Completed)
}

func TestRecordNilTable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Extraction can be skipped entirely; a nil table is a degraded state,
	// not an error, and still gets recorded.
	run := &orchestrator.Run{
		ID:        "run-degraded",
		Project:   "/projects/muncie",
		StartedAt: time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
		Duration:  5 * time.Second,
		Result:    result.NewComputeParallelResult(map[string]bool{"01": true}, nil),
	}
	require.NoError(t, s.Record(ctx, run))

	rec, err := s.Get(ctx, "run-degraded")
	require.NoError(t, err)
	require.Len(t, rec.Plans, 1)
	assert.Equal(t, "01", rec.Plans[0].Row.Plan)
	assert.True(t, rec.Plans[0].Success)
	assert.False(t, rec.Plans[0].Row.Completed)
}
