// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

// AssertEqualText compares two blobs of text and, on mismatch, fails the
// test with a unified diff (which reads far better than testify's one-line
// quoting for whole formatted documents).
func AssertEqualText(t *testing.T, exp, act string) bool {
	t.Helper()
	if exp == act {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{ //nolint:exhaustivestruct
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  3,
	})
	t.Errorf("text diff:\n%s", diff)
	return false
}

// Dump renders a value for test failure output: compact, deterministic, no
// pointer addresses.
func Dump(val interface{}) string {
	spewConfig := spew.ConfigState{ //nolint:exhaustivestruct
		Indent:                  "  ",
		DisableCapacities:       true,
		DisablePointerAddresses: true,
		SortKeys:                true,
	}
	return strings.TrimRight(spewConfig.Sdump(val), "\n")
}
