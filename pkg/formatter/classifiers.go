// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package formatter

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/datawire/pyproject-fmt/pkg/python/pep345"
)

const (
	classifierPythonPrefix = "Programming Language :: Python :: 3"
	classifierPython3Only  = "Programming Language :: Python :: 3 :: Only"
)

var reClassifierVersion = regexp.MustCompile(`^Programming Language :: Python :: 3\.([0-9]+)$`)

// supportedPythonVersions evaluates a Requires-Python constraint over the
// effective candidate set and returns the satisfying versions, ascending.
//
// The effective candidate set is the configured
// [MinSupportedPython, MaxSupportedPython] range, stretched (contiguously)
// to cover any 3.x version named by a constraint atom (for `>`, the
// following minor), so that a bound outside the configured range still
// produces its classifiers; plus any version named by a `Programming
// Language :: Python :: 3.N` classifier already in the document, as long as
// it is not below the configured floor.  Candidates that fail the
// constraint are dropped.
func supportedPythonVersions(existing []string, constraint pep345.VersionSpecifier, set Settings) []PyVersion {
	lo := set.MinSupportedPython
	hi := set.MaxSupportedPython
	for _, clause := range constraint {
		v := PyVersion{Major: clause.Version.Major(), Minor: clause.Version.Minor()}
		if clause.CmpOp == pep345.CmpOpGT {
			v = v.Next()
		}
		if v.Major != 3 {
			continue
		}
		if v.Cmp(lo) < 0 {
			lo = v
		}
		if v.Cmp(hi) > 0 {
			hi = v
		}
	}
	candidates := make(map[PyVersion]bool)
	for v := lo; v.Cmp(hi) <= 0; v = v.Next() {
		candidates[v] = true
	}
	for _, classifier := range existing {
		if m := reClassifierVersion.FindStringSubmatch(classifier); m != nil {
			minor, _ := strconv.Atoi(m[1])
			if v := (PyVersion{3, minor}); v.Cmp(set.MinSupportedPython) >= 0 {
				candidates[v] = true
			}
		}
	}

	supported := make([]PyVersion, 0, len(candidates))
	for v := range candidates {
		if constraint.Match(v.Version()) {
			supported = append(supported, v)
		}
	}
	sort.Slice(supported, func(i, j int) bool { return supported[i].Cmp(supported[j]) < 0 })
	return supported
}

// pythonClassifiers renders the classifier entries for a supported-version
// set: exactly one `3 :: Only` entry, then one `3.N` entry per version.
func pythonClassifiers(supported []PyVersion) []string {
	ret := make([]string, 0, len(supported)+1)
	ret = append(ret, classifierPython3Only)
	for _, v := range supported {
		ret = append(ret, fmt.Sprintf("Programming Language :: Python :: %s", v))
	}
	return ret
}

// sortClassifiers sorts ascending with numeric runs compared numerically, so
// that `3.10` follows `3.9`.  The sort is stable; duplicates survive.
func sortClassifiers(classifiers []string) {
	sort.SliceStable(classifiers, func(i, j int) bool {
		return naturalCmp(classifiers[i], classifiers[j]) < 0
	})
}

// naturalCmp compares strings byte-wise, except that maximal runs of ASCII
// digits compare by numeric value.
func naturalCmp(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			runA := digitRun(a[i:])
			runB := digitRun(b[j:])
			numA := strings.TrimLeft(runA, "0")
			numB := strings.TrimLeft(runB, "0")
			switch {
			case len(numA) != len(numB):
				return len(numA) - len(numB)
			case numA != numB:
				return strings.Compare(numA, numB)
			case runA != runB:
				return strings.Compare(runA, runB)
			}
			i += len(runA)
			j += len(runB)
			continue
		}
		if ca != cb {
			return int(ca) - int(cb)
		}
		i++
		j++
	}
	return (len(a) - i) - (len(b) - j)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func digitRun(s string) string {
	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	return s[:end]
}
