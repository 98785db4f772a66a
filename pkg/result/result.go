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

import "sort"

// ComputeResult is the outcome of running a single plan. Legacy callers
// treated the operation's return value as a plain boolean; Bool preserves
// that reading while Row carries the structured fields for newer callers.
type ComputeResult struct {
	// Plan is the plan number this result describes.
	Plan string `json:"plan" yaml:"plan"`

	// Success indicates the run completed without error lines.
	Success bool `json:"success" yaml:"success"`

	// Row is the plan's results-table row, nil when extraction was
	// skipped or failed.
	Row *Row `json:"row,omitempty" yaml:"row,omitempty"`
}

// Bool returns the value legacy callers previously received as a raw boolean.
func (r ComputeResult) Bool() bool {
	return r.Success
}

// ComputeParallelResult is the outcome of running a batch of plans in
// parallel. It exposes the legacy plan-to-success map contract through
// explicit container methods while carrying the batch results table.
type ComputeParallelResult struct {
	successes map[string]bool
	table     *Table
}

// NewComputeParallelResult builds a parallel result from the per-plan
// success map and the optional results table. The map is copied; the
// result does not observe later mutation of the argument.
func NewComputeParallelResult(successes map[string]bool, table *Table) ComputeParallelResult {
	m := make(map[string]bool, len(successes))
	for k, v := range successes {
		m[k] = v
	}
	return ComputeParallelResult{successes: m, table: table}
}

// Bool preserves the historical truthiness of the raw map: true iff the
// result contains at least one plan entry. Note this conflates "no plans
// were requested" with "evaluated as no-success"; callers that need to
// distinguish the two must check Len themselves.
func (r ComputeParallelResult) Bool() bool {
	return len(r.successes) > 0
}

// Len returns the number of plan entries.
func (r ComputeParallelResult) Len() int {
	return len(r.successes)
}

// Get returns the success flag for a plan and whether the plan is present.
func (r ComputeParallelResult) Get(plan string) (bool, bool) {
	v, ok := r.successes[plan]
	return v, ok
}

// Contains reports whether the result has an entry for the plan.
func (r ComputeParallelResult) Contains(plan string) bool {
	_, ok := r.successes[plan]
	return ok
}

// Plans returns the plan numbers in sorted order. Iteration over the
// result always uses this order so batch output is deterministic.
func (r ComputeParallelResult) Plans() []string {
	plans := make([]string, 0, len(r.successes))
	for p := range r.successes {
		plans = append(plans, p)
	}
	sort.Strings(plans)
	return plans
}

// Successes returns a copy of the plan-to-success map.
func (r ComputeParallelResult) Successes() map[string]bool {
	m := make(map[string]bool, len(r.successes))
	for k, v := range r.successes {
		m[k] = v
	}
	return m
}

// AllSuccessful reports whether every plan in the batch succeeded.
// It is false for an empty result.
func (r ComputeParallelResult) AllSuccessful() bool {
	if len(r.successes) == 0 {
		return false
	}
	for _, ok := range r.successes {
		if !ok {
			return false
		}
	}
	return true
}

// Table returns the batch results table, nil when extraction was skipped.
func (r ComputeParallelResult) Table() *Table {
	return r.table
}

// RasControlResult is the outcome of a controller-driven plan run. Legacy
// call sites destructure it into exactly two values via Unpack; the Row is
// reachable only through the field, never through unpacking. The asymmetry
// is intentional: old `success, msgs := run(...)` sites keep working
// verbatim.
type RasControlResult struct {
	// Success indicates the run completed without error lines.
	Success bool `json:"success" yaml:"success"`

	// Messages are the operator-facing messages collected during the run.
	Messages []string `json:"messages" yaml:"messages"`

	// Row is the plan's results-table row, nil when extraction was
	// skipped or failed.
	Row *Row `json:"row,omitempty" yaml:"row,omitempty"`
}

// Unpack returns the legacy (success, messages) pair.
func (r RasControlResult) Unpack() (bool, []string) {
	return r.Success, r.Messages
}
