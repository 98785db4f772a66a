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

import (
	"regexp"
	"strconv"
	"strings"
)

// Canonical runtime fields populated from the task/time table.
type runtimeField int

const (
	fieldNone runtimeField = iota
	fieldCompleteProcess
	fieldUnsteadyCompute
	fieldGeometry
	fieldPreprocessing
	fieldEventConditions
)

// taskAliases maps every known textual variant of a computation task name
// (the names drift across solver versions) to its canonical runtime field.
// Unmapped task names are ignored rather than rejected so that a new solver
// version at worst loses a field, never crashes the parse.
var taskAliases = map[string]runtimeField{
	"complete process":                   fieldCompleteProcess,
	"unsteady flow computations":         fieldUnsteadyCompute,
	"unsteady flow simulation":           fieldUnsteadyCompute,
	"completing geometry":                fieldGeometry,
	"completing geometry, flow and plan": fieldGeometry,
	"geometry processing":                fieldGeometry,
	"preprocessing geometry":             fieldPreprocessing,
	"preprocessing geometry(64)":         fieldPreprocessing,
	"completing event conditions":        fieldEventConditions,
	"event conditions":                   fieldEventConditions,
}

var (
	// Table rows are tab separated: task name, then a value.
	taskTimeRow = regexp.MustCompile(`^([^\t]+?)\t+(\S+)`)
	speedRow    = regexp.MustCompile(`^([^\t]+?)\t+([0-9.]+)x?`)

	// The volume accounting metric is a single line outside either table.
	volErrorLine = regexp.MustCompile(`Overall Volume Accounting Error as percentage:\s*(-?[0-9]*\.?[0-9]+)`)
)

// Speed rows are keyed by substring, not exact name, because the solver
// appends qualifiers to both entries.
const (
	speedTaskCompleteProcess = "Complete Process"
	speedTaskUnsteadyFlow    = "Unsteady Flow"
)

// ParseRuntime extracts the per-task runtime breakdown from a compute-message
// block. It is the fallback for older solver versions whose runtime data is
// only available inside the free-text "Computations Summary" section.
//
// The scan runs a small state machine with two mutually exclusive table
// modes: the task/time table (header containing "Computation Task" and
// "Time") and the speed table (header containing "Computation Speed" and
// "Simulation"). Independent of mode, every line is tested for the volume
// accounting metric; the last occurrence wins, though only one is expected.
// Malformed rows and unknown task names are skipped, never reported.
func ParseRuntime(text string) RuntimeSummary {
	var rs RuntimeSummary

	type tableMode int
	const (
		modeNone tableMode = iota
		modeTaskTime
		modeSpeed
	)
	mode := modeNone

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")

		if m := volErrorLine.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				rs.VolErrorPercent = &v
			}
		}

		switch {
		case strings.Contains(line, "Computation Speed") && strings.Contains(line, "Simulation"):
			mode = modeSpeed
			continue
		case strings.Contains(line, "Computation Task") && strings.Contains(line, "Time"):
			mode = modeTaskTime
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		switch mode {
		case modeTaskTime:
			m := taskTimeRow.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			task := strings.ToLower(strings.TrimSpace(m[1]))
			val := parseTaskTime(m[2])
			if val == nil {
				continue
			}
			switch taskAliases[task] {
			case fieldCompleteProcess:
				rs.RuntimeCompleteProcess = val
			case fieldUnsteadyCompute:
				rs.RuntimeUnsteadyCompute = val
			case fieldGeometry:
				rs.RuntimeGeometry = val
			case fieldPreprocessing:
				rs.RuntimePreprocessing = val
			case fieldEventConditions:
				rs.RuntimeEventConditions = val
			case fieldNone:
				// unknown task name, skip
			}

		case modeSpeed:
			m := speedRow.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			task := strings.TrimSpace(m[1])
			switch {
			case strings.Contains(task, speedTaskCompleteProcess):
				rs.CompleteProcessSpeed = &v
			case strings.Contains(task, speedTaskUnsteadyFlow):
				rs.UnsteadyFlowSpeed = &v
			}

		case modeNone:
			// volume accounting metric already handled above
		}
	}

	return rs
}

// parseTaskTime parses a time value from the task/time table.
//
// Accepted forms: "<1" (sub-second sentinel, reported as 0.5s), "SS",
// "MM:SS", and "HH:MM:SS". Anything else yields nil.
func parseTaskTime(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if s == "<1" {
		v := 0.5
		return &v
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return nil
	}
	total := 0.0
	for _, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil || f < 0 {
			return nil
		}
		total = total*60 + f
	}
	return &total
}
