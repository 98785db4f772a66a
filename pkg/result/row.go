// Copyright (c) 2025, Hydrostack Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package result

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/hydrostack/ras-compute/pkg/messages"
)

// Row is one line of the results table: the per-plan fields downstream
// consumers read. Field tags carry the fixed key names of the output
// contract; pointer fields serialize as null when the source text lacked
// the value.
type Row struct {
	// Plan is the plan number, e.g. "01".
	Plan string `json:"plan" yaml:"plan"`

	// Title is the human-readable plan title, empty when unknown.
	Title string `json:"plan_title,omitempty" yaml:"plan_title,omitempty"`

	Completed      bool    `json:"completed" yaml:"completed"`
	HasErrors      bool    `json:"has_errors" yaml:"has_errors"`
	HasWarnings    bool    `json:"has_warnings" yaml:"has_warnings"`
	ErrorCount     int     `json:"error_count" yaml:"error_count"`
	WarningCount   int     `json:"warning_count" yaml:"warning_count"`
	FirstErrorLine *string `json:"first_error_line" yaml:"first_error_line"`

	RuntimeCompleteProcess *float64 `json:"runtime_complete_process_seconds" yaml:"runtime_complete_process_seconds"`
	RuntimeUnsteadyCompute *float64 `json:"runtime_unsteady_compute_seconds" yaml:"runtime_unsteady_compute_seconds"`
	RuntimeGeometry        *float64 `json:"runtime_geometry_seconds" yaml:"runtime_geometry_seconds"`
	RuntimePreprocessing   *float64 `json:"runtime_preprocessing_seconds" yaml:"runtime_preprocessing_seconds"`
	RuntimeEventConditions *float64 `json:"runtime_event_conditions_seconds" yaml:"runtime_event_conditions_seconds"`
	CompleteProcessSpeed   *float64 `json:"complete_process_speed" yaml:"complete_process_speed"`
	UnsteadyFlowSpeed      *float64 `json:"unsteady_flow_speed" yaml:"unsteady_flow_speed"`
	VolErrorPercent        *float64 `json:"vol_error_percent" yaml:"vol_error_percent"`
}

// NewRow builds a Row for a plan from its parsed summaries. The runtime
// summary may be nil when runtime extraction was skipped.
func NewRow(plan string, s messages.Summary, rs *messages.RuntimeSummary) Row {
	r := Row{
		Plan:           plan,
		Completed:      s.Completed,
		HasErrors:      s.HasErrors,
		HasWarnings:    s.HasWarnings,
		ErrorCount:     s.ErrorCount,
		WarningCount:   s.WarningCount,
		FirstErrorLine: s.FirstErrorLine,
	}
	if rs != nil {
		r.RuntimeCompleteProcess = rs.RuntimeCompleteProcess
		r.RuntimeUnsteadyCompute = rs.RuntimeUnsteadyCompute
		r.RuntimeGeometry = rs.RuntimeGeometry
		r.RuntimePreprocessing = rs.RuntimePreprocessing
		r.RuntimeEventConditions = rs.RuntimeEventConditions
		r.CompleteProcessSpeed = rs.CompleteProcessSpeed
		r.UnsteadyFlowSpeed = rs.UnsteadyFlowSpeed
		r.VolErrorPercent = rs.VolErrorPercent
	}
	return r
}

// Table is the tabular results summary, one Row per plan.
type Table struct {
	Rows []Row `json:"rows" yaml:"rows"`
}

// NewTable creates an empty results table.
func NewTable() *Table {
	return &Table{Rows: make([]Row, 0)}
}

// Append adds a row to the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Get retrieves the row for a plan, returning nil if not found. Safe to
// call on a nil table so degraded results can be read uniformly.
func (t *Table) Get(plan string) *Row {
	if t == nil {
		return nil
	}
	for i := range t.Rows {
		if t.Rows[i].Plan == plan {
			return &t.Rows[i]
		}
	}
	return nil
}

// Sorted returns the rows ordered by plan number.
func (t *Table) Sorted() []Row {
	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Plan < rows[j].Plan
	})
	return rows
}

// csvHeader is the fixed column order of the CSV export.
var csvHeader = []string{
	"plan",
	"plan_title",
	"completed",
	"has_errors",
	"has_warnings",
	"error_count",
	"warning_count",
	"first_error_line",
	"runtime_complete_process_seconds",
	"runtime_unsteady_compute_seconds",
	"runtime_geometry_seconds",
	"runtime_preprocessing_seconds",
	"runtime_event_conditions_seconds",
	"complete_process_speed",
	"unsteady_flow_speed",
	"vol_error_percent",
}

// WriteCSV writes the table in plan order as CSV. Nil fields render as
// empty cells.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range t.Sorted() {
		record := []string{
			r.Plan,
			r.Title,
			strconv.FormatBool(r.Completed),
			strconv.FormatBool(r.HasErrors),
			strconv.FormatBool(r.HasWarnings),
			strconv.Itoa(r.ErrorCount),
			strconv.Itoa(r.WarningCount),
			strOrEmpty(r.FirstErrorLine),
			floatOrEmpty(r.RuntimeCompleteProcess),
			floatOrEmpty(r.RuntimeUnsteadyCompute),
			floatOrEmpty(r.RuntimeGeometry),
			floatOrEmpty(r.RuntimePreprocessing),
			floatOrEmpty(r.RuntimeEventConditions),
			floatOrEmpty(r.CompleteProcessSpeed),
			floatOrEmpty(r.UnsteadyFlowSpeed),
			floatOrEmpty(r.VolErrorPercent),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
