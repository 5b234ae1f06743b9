// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package formatter is the rewriting engine behind pyproject-fmt: it takes
// the text of a pyproject.toml document plus resolved Settings and returns
// the same document re-serialized in the house style.
//
// The pipeline is a fixed sequence of per-table rewriters over a
// format-preserving syntax tree (pkg/tomlcst).  Only structurally invalid
// TOML makes Format fail; a malformed dependency or interpreter constraint
// is left byte-verbatim and recorded in the Report instead.
package formatter

import (
	"fmt"

	"github.com/datawire/pyproject-fmt/pkg/tomlcst"
)

// Warning records a value that was left verbatim because it could not be
// interpreted: a malformed specifier, or a recognized key holding an
// unexpected shape.
type Warning struct {
	Table  string
	Key    string
	Reason string
}

func (w Warning) String() string {
	if w.Table == "" {
		return fmt.Sprintf("%s: %s", w.Key, w.Reason)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Table, w.Key, w.Reason)
}

// Report is the structured side channel of a Format call.
type Report struct {
	Warnings []Warning
}

func (r *Report) warn(table, key, reason string) {
	r.Warnings = append(r.Warnings, Warning{Table: table, Key: key, Reason: reason})
}

// Format formats a pyproject.toml document.  The input is not modified; the
// returned text is UTF-8, LF-separated, and terminated by exactly one
// newline.  Format is idempotent: feeding its output back in (with the same
// Settings) returns the output unchanged.
//
// The only possible error is a *tomlcst.ParseError for structurally invalid
// TOML.
func Format(input []byte, set Settings) ([]byte, Report, error) {
	set.fillDefaults()
	doc, err := tomlcst.Parse(input)
	if err != nil {
		return nil, Report{}, err
	}
	var report Report
	rewriteBuildSystem(doc, set, &report)
	rewriteProject(doc, set, &report)
	rewriteScriptTable(doc, "project.scripts")
	rewriteScriptTable(doc, "project.gui-scripts")
	rewriteEntryPoints(doc, &report)
	rewriteOptionalDependencies(doc, set, &report)
	rewriteToolTables(doc)
	return doc.Serialize(), report, nil
}
