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

// Package version parses and compares solver and tool version strings.
//
// HEC-RAS releases are versioned with one to three numeric components
// ("6", "6.5", "6.3.1"), sometimes with a suffix ("6.5-beta"). Precision
// is preserved: "6.5" compared against "6.5.1" only considers the first
// two components.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
)

// Version is a solver or tool version with flexible precision. The
// Precision field records how many components are significant for
// comparisons.
type Version struct {
	Major int `json:"major,omitempty" yaml:"major,omitempty"`
	Minor int `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch int `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Precision indicates how many components are significant (1, 2, or 3)
	Precision int `json:"precision,omitempty" yaml:"precision,omitempty"`

	// Extras stores a trailing suffix like "-beta" or "+build.7"
	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// New creates a full-precision Version.
func New(major, minor, patch int) Version {
	return Version{
		Major:     major,
		Minor:     minor,
		Patch:     patch,
		Precision: 3,
	}
}

// String renders the version respecting its precision. Extras are not
// included.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return fmt.Sprintf("%d", v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// Parse parses a version string. Supported forms: "6", "6.5", "6.3.1",
// "v6.3.1", "6.5-beta". A leading "v" is stripped; a suffix starting with
// '-' or '+' after a digit is preserved in Extras.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	s = strings.TrimPrefix(s, "v")
	var v Version

	mainPart := s
	for i, ch := range s {
		if (ch == '-' || ch == '+') && i > 0 {
			if prev := s[i-1]; prev >= '0' && prev <= '9' {
				mainPart = s[:i]
				v.Extras = s[i:]
				break
			}
		}
	}

	parts := strings.Split(mainPart, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}

	for i, part := range parts {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if num < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrNegativeComponent, part)
		}
		switch i {
		case 0:
			v.Major = num
		case 1:
			v.Minor = num
		case 2:
			v.Patch = num
		}
	}

	v.Precision = len(parts)
	return v, nil
}

// compare returns -1, 0, or 1 over the components both versions consider
// significant.
func (v Version) compare(other Version) int {
	precision := v.Precision
	if other.Precision < precision {
		precision = other.Precision
	}
	if precision < 1 {
		precision = 3
	}

	pairs := [3][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	}
	for i := 0; i < precision; i++ {
		if pairs[i][0] != pairs[i][1] {
			if pairs[i][0] < pairs[i][1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// EqualsOrNewer reports whether v is the same as or newer than other,
// at the coarser of the two precisions.
func (v Version) EqualsOrNewer(other Version) bool {
	return v.compare(other) >= 0
}

// IsNewer reports whether v is strictly newer than other.
func (v Version) IsNewer(other Version) bool {
	return v.compare(other) > 0
}
