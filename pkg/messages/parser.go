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
	"strings"
	"unicode/utf8"
)

// CompletePhrase is the literal phrase the solver emits when the full compute
// pipeline finished. Its presence is the only completion signal.
const CompletePhrase = "Complete Process"

// firstErrorMaxLen caps the retained diagnostic line.
const firstErrorMaxLen = 200

// errorPatterns classify a line as a solver failure. Order matters only for
// readability; a line counts once no matter how many patterns it matches.
var errorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)error:`),
	regexp.MustCompile(`(?i)error -`),
	regexp.MustCompile(`(?i)computation failed`),
	regexp.MustCompile(`(?i)run failed`),
	regexp.MustCompile(`(?i)failed to`),
	regexp.MustCompile(`(?i)unable to`),
	regexp.MustCompile(`(?i)cannot `),
	regexp.MustCompile(`(?i)fatal error`),
	regexp.MustCompile(`(?i)exception:`),
	regexp.MustCompile(`(?i)aborted`),
	regexp.MustCompile(`(?i)terminated abnormally`),
}

// errorExclusions suppress false positives: metric labels that contain the
// word "error" but report numeric model quality, not software failure.
// Over-flagging would mark successful runs as failed, so this list must stay
// in sync with the metric names the solver prints.
var errorExclusions = []*regexp.Regexp{
	regexp.MustCompile(`(?i)volume accounting error`),
	regexp.MustCompile(`(?i)wsel error`),
	regexp.MustCompile(`(?i)error \(ft\)`),
	regexp.MustCompile(`(?i)maximum.*error`),
	regexp.MustCompile(`(?i)rs wsel error`),
	regexp.MustCompile(`(?i)iterations`),
}

// warningPattern is the union of keywords that flag a line as a warning.
var warningPattern = regexp.MustCompile(`(?i)warning|caution|notice|exceeded|unstable|convergence`)

// Parse classifies a raw compute-message block into a Summary.
//
// Empty input yields the zero Summary. Each non-blank line is first tested
// against the error patterns; a match that also matches an exclusion does not
// count as an error but may still count as a warning. Lines not classified as
// errors are tested against the warning keywords. The first non-excluded
// error line is retained (truncated) as the diagnostic anchor.
func Parse(text string) Summary {
	var s Summary
	if text == "" {
		return s
	}

	s.Completed = strings.Contains(text, CompletePhrase)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if isErrorLine(line) {
			s.ErrorCount++
			if s.FirstErrorLine == nil {
				anchor := truncate(line, firstErrorMaxLen)
				s.FirstErrorLine = &anchor
			}
			continue
		}

		if warningPattern.MatchString(line) {
			s.WarningCount++
		}
	}

	s.HasErrors = s.ErrorCount > 0
	s.HasWarnings = s.WarningCount > 0
	return s
}

// IsSuccessfulCompletion reports whether the messages describe a run that
// completed the full pipeline without any error lines.
func IsSuccessfulCompletion(text string) bool {
	s := Parse(text)
	return s.Completed && !s.HasErrors
}

// isErrorLine reports whether a line matches an error pattern and is not
// suppressed by an exclusion.
func isErrorLine(line string) bool {
	matched := false
	for _, p := range errorPatterns {
		if p.MatchString(line) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, p := range errorExclusions {
		if p.MatchString(line) {
			return false
		}
	}
	return true
}

// truncate caps s at n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
