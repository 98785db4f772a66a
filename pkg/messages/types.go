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

package messages

// Summary is the structured classification of a compute-message block.
//
// It is a pure function of the input text: Completed is an exact substring
// test for the completion phrase and is independent of error state, so a run
// can be completed and still carry errors. The counting invariants hold for
// every input: HasErrors == (ErrorCount > 0), HasWarnings == (WarningCount > 0),
// and FirstErrorLine is non-nil iff ErrorCount > 0.
type Summary struct {
	// Completed indicates the full pipeline completion phrase was found.
	Completed bool `json:"completed" yaml:"completed"`

	// HasErrors indicates at least one line classified as an error.
	HasErrors bool `json:"has_errors" yaml:"has_errors"`

	// HasWarnings indicates at least one line classified as a warning.
	HasWarnings bool `json:"has_warnings" yaml:"has_warnings"`

	// ErrorCount is the number of non-excluded error lines.
	ErrorCount int `json:"error_count" yaml:"error_count"`

	// WarningCount is the number of warning lines not already counted as errors.
	WarningCount int `json:"warning_count" yaml:"warning_count"`

	// FirstErrorLine is the first error line, truncated for diagnostics.
	// Nil when no error line was found.
	FirstErrorLine *string `json:"first_error_line" yaml:"first_error_line"`
}

// RuntimeSummary holds the per-task runtime breakdown extracted from the
// "Computations Summary" section of a compute-message block. Every field is
// nil when the source text lacks the corresponding task or the value is
// unparseable; ParseRuntime never fails outright.
//
// Runtime fields are in seconds. Speed fields are the solver-reported
// simulation-to-wall-clock ratios. VolErrorPercent is the overall volume
// accounting error, a water-balance closure metric unrelated to software
// failure despite its name.
type RuntimeSummary struct {
	RuntimeCompleteProcess *float64 `json:"runtime_complete_process_seconds" yaml:"runtime_complete_process_seconds"`
	RuntimeUnsteadyCompute *float64 `json:"runtime_unsteady_compute_seconds" yaml:"runtime_unsteady_compute_seconds"`
	RuntimeGeometry        *float64 `json:"runtime_geometry_seconds" yaml:"runtime_geometry_seconds"`
	RuntimePreprocessing   *float64 `json:"runtime_preprocessing_seconds" yaml:"runtime_preprocessing_seconds"`
	RuntimeEventConditions *float64 `json:"runtime_event_conditions_seconds" yaml:"runtime_event_conditions_seconds"`
	CompleteProcessSpeed   *float64 `json:"complete_process_speed" yaml:"complete_process_speed"`
	UnsteadyFlowSpeed      *float64 `json:"unsteady_flow_speed" yaml:"unsteady_flow_speed"`
	VolErrorPercent        *float64 `json:"vol_error_percent" yaml:"vol_error_percent"`
}
