// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/datawire/pyproject-fmt/pkg/tomlcst"
)

// ParsePyVersion parses a `"3.N"` interpreter version string.
func ParsePyVersion(str string) (PyVersion, error) {
	parts := strings.Split(strings.TrimSpace(str), ".")
	if len(parts) != 2 {
		return PyVersion{}, fmt.Errorf("invalid python version %q: want MAJOR.MINOR", str)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return PyVersion{}, fmt.Errorf("invalid python version %q: %w", str, err)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return PyVersion{}, fmt.Errorf("invalid python version %q: %w", str, err)
	}
	return PyVersion{Major: major, Minor: minor}, nil
}

// DiscoverSettings overlays any `[tool.pyproject-fmt]` section found in the
// document onto base.  This is the configuration-discovery collaborator; the
// core Format call never reads configuration out of the document itself.
//
// Recognized keys: column_width, indent, keep_full_version,
// min_supported_python, max_supported_python (the bounds as `"3.N"`
// strings).  Unknown keys are ignored; a key of the wrong shape is an error.
func DiscoverSettings(input []byte, base Settings) (Settings, error) {
	doc, err := tomlcst.Parse(input)
	if err != nil {
		return base, err
	}
	tbl := doc.Table("tool.pyproject-fmt")
	if tbl == nil {
		return base, nil
	}
	ret := base
	for _, entry := range tbl.Entries {
		val := entry.Value
		switch entry.Key {
		case "column_width":
			if val.Kind != tomlcst.KindInteger {
				return base, fmt.Errorf("tool.pyproject-fmt.%s: expected an integer", entry.Key)
			}
			ret.ColumnWidth = int(val.Int)
		case "indent":
			if val.Kind != tomlcst.KindInteger {
				return base, fmt.Errorf("tool.pyproject-fmt.%s: expected an integer", entry.Key)
			}
			ret.Indent = int(val.Int)
			ret.IndentSet = true
		case "keep_full_version":
			if val.Kind != tomlcst.KindBool {
				return base, fmt.Errorf("tool.pyproject-fmt.%s: expected a boolean", entry.Key)
			}
			ret.KeepFullVersion = val.Bool
		case "min_supported_python":
			if val.Kind != tomlcst.KindString {
				return base, fmt.Errorf("tool.pyproject-fmt.%s: expected a string", entry.Key)
			}
			ver, err := ParsePyVersion(val.Str)
			if err != nil {
				return base, fmt.Errorf("tool.pyproject-fmt.%s: %w", entry.Key, err)
			}
			ret.MinSupportedPython = ver
		case "max_supported_python":
			if val.Kind != tomlcst.KindString {
				return base, fmt.Errorf("tool.pyproject-fmt.%s: expected a string", entry.Key)
			}
			ver, err := ParsePyVersion(val.Str)
			if err != nil {
				return base, fmt.Errorf("tool.pyproject-fmt.%s: %w", entry.Key, err)
			}
			ret.MaxSupportedPython = ver
		}
	}
	return ret, nil
}
