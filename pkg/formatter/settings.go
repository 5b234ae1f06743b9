// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package formatter

import (
	"fmt"

	"github.com/datawire/pyproject-fmt/pkg/python/pep440"
)

// PyVersion identifies an interpreter release line, e.g. 3.11.
type PyVersion struct {
	Major int
	Minor int
}

func (v PyVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Next returns the following minor release line.
func (v PyVersion) Next() PyVersion {
	return PyVersion{Major: v.Major, Minor: v.Minor + 1}
}

// Cmp returns <0, 0, or >0; the ordering is lexicographic on (major, minor).
func (v PyVersion) Cmp(o PyVersion) int {
	if v.Major != o.Major {
		return v.Major - o.Major
	}
	return v.Minor - o.Minor
}

// Version converts to a pep440 version for constraint evaluation.
func (v PyVersion) Version() pep440.Version {
	return pep440.Version{PublicVersion: pep440.PublicVersion{Release: []int{v.Major, v.Minor}}}
}

// Settings is the resolved configuration for one format call.  The zero
// value means "use the defaults"; fillDefaults resolves it.
type Settings struct {
	// ColumnWidth is the maximum line width used by the array layout
	// heuristics.
	ColumnWidth int
	// Indent is the number of spaces each element of an expanded array is
	// indented by.
	Indent int
	// IndentSet records that Indent was set explicitly, so that an explicit
	// 0 survives fillDefaults.
	IndentSet bool
	// KeepFullVersion disables stripping of trailing `.0` version segments
	// in pinned dependency versions.
	KeepFullVersion bool
	// MinSupportedPython and MaxSupportedPython bound (inclusively) the
	// candidate interpreter versions used for classifier synthesis.
	MinSupportedPython PyVersion
	MaxSupportedPython PyVersion
}

func (s *Settings) fillDefaults() {
	if s.ColumnWidth <= 0 {
		s.ColumnWidth = 120
	}
	if s.Indent <= 0 && !s.IndentSet {
		s.Indent = 2
	}
	if s.Indent < 0 {
		s.Indent = 0
	}
	if s.MinSupportedPython == (PyVersion{}) {
		s.MinSupportedPython = PyVersion{3, 8}
	}
	if s.MaxSupportedPython == (PyVersion{}) {
		s.MaxSupportedPython = PyVersion{3, 12}
	}
}
