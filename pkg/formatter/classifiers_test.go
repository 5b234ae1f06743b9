// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package formatter_test

import (
	"testing"

	"github.com/datawire/pyproject-fmt/pkg/formatter"
)

func classifierTest(t *testing.T, requires string, body string, expectedClassifiers []string, set formatter.Settings) {
	t.Helper()
	input := "[project]\nrequires-python = \"" + requires + "\"\n" + body
	expected := "[project]\nrequires-python = \"" + requires + "\"\nclassifiers = [\n"
	for _, classifier := range expectedClassifiers {
		expected += "  \"" + classifier + "\",\n"
	}
	expected += "]\n"
	fmtTest(t, input, expected, set)
}

func TestClassifierSynthesis(t *testing.T) {
	t.Parallel()
	type testcase struct {
		requires string
		body     string
		expected []string
		set      formatter.Settings
	}
	only := "Programming Language :: Python :: 3 :: Only"
	py := func(vers ...string) []string {
		ret := []string{only}
		for _, v := range vers {
			ret = append(ret, "Programming Language :: Python :: "+v)
		}
		return ret
	}
	testcases := map[string]testcase{
		"upper-bound-empty": {
			requires: "<3.7",
			expected: py(),
		},
		"exclusive-lower-bound": {
			requires: ">3.6",
			expected: py("3.7", "3.8", "3.9", "3.10", "3.11", "3.12"),
		},
		"inclusive-lower-bound": {
			requires: ">=3.6",
			expected: py("3.6", "3.7", "3.8", "3.9", "3.10", "3.11", "3.12"),
		},
		"range": {
			requires: ">=3.7,<3.13",
			expected: py("3.7", "3.8", "3.9", "3.10", "3.11", "3.12"),
		},
		"exclusion": {
			requires: "!=3.9",
			expected: py("3.8", "3.10", "3.11", "3.12"),
		},
		"range-with-exclusion": {
			requires: "<=3.12,!=3.9,>=3.8",
			expected: py("3.8", "3.10", "3.11", "3.12"),
		},
		"upper-bound-above-candidates": {
			requires: "<=3.13,>3.10",
			expected: py("3.11", "3.12", "3.13"),
		},
		"exact": {
			requires: "==3.12",
			body: "classifiers = [\n" +
				"  \"Programming Language :: Python :: 3 :: Only\",\n" +
				"  \"Programming Language :: Python :: 3.10\",\n" +
				"  \"Programming Language :: Python :: 3.11\",\n" +
				"  \"Programming Language :: Python :: 3.12\",\n" +
				"]\n",
			expected: py("3.12"),
		},
		"upper-bound-drops-authorial-below-floor": {
			requires: "<3.8",
			body: "classifiers = [\n" +
				"  \"Programming Language :: Python :: 3.5\",\n" +
				"  \"Programming Language :: Python :: 3.6\",\n" +
				"  \"Programming Language :: Python :: 3.7\",\n" +
				"  \"Programming Language :: Python :: 3.8\",\n" +
				"]\n",
			expected: py(),
		},
		"authorial-widening-beyond-max": {
			requires: ">=3.10",
			body: "classifiers = [\n" +
				"  \"Programming Language :: Python :: 3 :: Only\",\n" +
				"  \"Programming Language :: Python :: 3.9\",\n" +
				"  \"Programming Language :: Python :: 3.10\",\n" +
				"  \"Programming Language :: Python :: 3.11\",\n" +
				"  \"Programming Language :: Python :: 3.12\",\n" +
				"]\n",
			expected: py("3.10", "3.11", "3.12", "3.13", "3.14", "3.15"),
			set:      formatter.Settings{MaxSupportedPython: formatter.PyVersion{Major: 3, Minor: 15}},
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			classifierTest(t, tcData.requires, tcData.body, tcData.expected, tcData.set)
		})
	}
}

func TestClassifierNoConstraintNoClassifiers(t *testing.T) {
	t.Parallel()
	fmtTest(t, "[project]\n", "[project]\n", formatter.Settings{})
}

func TestClassifierNoSynthesisWithoutRequiresPython(t *testing.T) {
	t.Parallel()
	// Without requires-python the classifiers are only sorted; nothing is
	// synthesized or dropped.
	input := `[project]
classifiers = [
  "Programming Language :: Python :: 3.9",
  "Programming Language :: Python :: 3 :: Only",
]
`
	expected := `[project]
classifiers = [
  "Programming Language :: Python :: 3 :: Only",
  "Programming Language :: Python :: 3.9",
]
`
	fmtTest(t, input, expected, formatter.Settings{})
}

func TestClassifierBadConstraintLeftVerbatim(t *testing.T) {
	t.Parallel()
	input := `[project]
requires-python = "~=3.8"
`
	actual, report, err := formatter.Format([]byte(input), formatter.Settings{})
	if err != nil {
		t.Fatal(err)
	}
	if string(actual) != input {
		t.Errorf("expected verbatim output, got:\n%s", actual)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Key != "requires-python" {
		t.Errorf("unexpected warnings: %v", report.Warnings)
	}
}
