/*
Copyright © 2025 Hydrostack Authors
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrostack/ras-compute/pkg/messages"
)

func TestNewRowFromSummaries(t *testing.T) {
	anchor := "Error: disk full"
	speed := 332.8
	s := messages.Summary{
		Completed:      true,
		HasErrors:      true,
		ErrorCount:     1,
		FirstErrorLine: &anchor,
	}
	rs := &messages.RuntimeSummary{CompleteProcessSpeed: &speed}

	row := NewRow("01", s, rs)

	assert.Equal(t, "01", row.Plan)
	assert.True(t, row.Completed)
	assert.True(t, row.HasErrors)
	assert.Equal(t, 1, row.ErrorCount)
	require.NotNil(t, row.FirstErrorLine)
	assert.Equal(t, anchor, *row.FirstErrorLine)
	require.NotNil(t, row.CompleteProcessSpeed)
	assert.InDelta(t, speed, *row.CompleteProcessSpeed, 1e-9)
	assert.Nil(t, row.RuntimeGeometry)
}

func TestNewRowNilRuntime(t *testing.T) {
	row := NewRow("02", messages.Summary{Completed: true}, nil)

	assert.Equal(t, "02", row.Plan)
	assert.Nil(t, row.RuntimeCompleteProcess)
	assert.Nil(t, row.VolErrorPercent)
}

func TestTableAppendGet(t *testing.T) {
	tbl := NewTable()
	tbl.Append(NewRow("02", messages.Summary{}, nil))
	tbl.Append(NewRow("01", messages.Summary{Completed: true}, nil))

	assert.Equal(t, 2, tbl.Len())

	row := tbl.Get("01")
	require.NotNil(t, row)
	assert.True(t, row.Completed)

	assert.Nil(t, tbl.Get("09"))
}

func TestTableGetNil(t *testing.T) {
	var tbl *Table
	assert.Nil(t, tbl.Get("01"))
}

func TestTableSorted(t *testing.T) {
	tbl := NewTable()
	tbl.Append(NewRow("10", messages.Summary{}, nil))
	tbl.Append(NewRow("02", messages.Summary{}, nil))
	tbl.Append(NewRow("01", messages.Summary{}, nil))

	rows := tbl.Sorted()

	require.Len(t, rows, 3)
	assert.Equal(t, "01", rows[0].Plan)
	assert.Equal(t, "02", rows[1].Plan)
	assert.Equal(t, "10", rows[2].Plan)

	// Sorted returns a copy; the table order is untouched.
	assert.Equal(t, "10", tbl.Rows[0].Plan)
}

func TestTableWriteCSV(t *testing.T) {
	vol := 0.0153
	tbl := NewTable()
	tbl.Append(NewRow("01", messages.Summary{Completed: true}, &messages.RuntimeSummary{VolErrorPercent: &vol}))
	tbl.Append(NewRow("02", messages.Summary{}, nil))

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "plan,plan_title,completed"))
	assert.True(t, strings.HasPrefix(lines[1], "01,,true"))
	assert.Contains(t, lines[1], "0.0153")
	assert.True(t, strings.HasPrefix(lines[2], "02,,false"))

	// Nil fields render as empty cells.
	assert.True(t, strings.HasSuffix(lines[2], ",,,,,,,,,"))
}

func TestTableWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTable().WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1, "header only")
}
