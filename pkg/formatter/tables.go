// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package formatter

import (
	"strings"

	"github.com/datawire/pyproject-fmt/pkg/tomlcst"
)

func rewriteBuildSystem(doc *tomlcst.Document, set Settings, report *Report) {
	tbl := doc.Table("build-system")
	if tbl == nil {
		return
	}
	for _, entry := range tbl.Entries {
		switch entry.Key {
		case "requires":
			rewriteDependencyArray(entry, "build-system", set, report)
		case "build-backend":
			if s, ok := stringOf(entry); ok {
				setString(entry, s)
			}
		case "backend-path":
			rewriteStringArray(entry, set, report, false)
		}
	}
	sortEntries(tbl.Entries, func(a, b *tomlcst.Entry) bool {
		return a.Key < b.Key
	})
}

// rewriteScriptTable sorts a [project.scripts]-style table by key; the
// entries themselves are only re-quoted.
func rewriteScriptTable(doc *tomlcst.Document, name string) {
	tbl := doc.Table(name)
	if tbl == nil {
		return
	}
	for _, entry := range tbl.Entries {
		if s, ok := stringOf(entry); ok {
			setString(entry, s)
		}
	}
	sortEntries(tbl.Entries, func(a, b *tomlcst.Entry) bool {
		return a.Key < b.Key
	})
}

// rewriteEntryPoints sorts the groups of [project.entry-points] ascending by
// raw key (so a quoted `"A.A"` collates by its quoted spelling) and
// re-renders each inline-table group with sorted keys.  Groups spelled as
// their own [project.entry-points.NAME] tables are sorted internally but
// stay at their source position.
func rewriteEntryPoints(doc *tomlcst.Document, report *Report) {
	if tbl := doc.Table("project.entry-points"); tbl != nil {
		for _, entry := range tbl.Entries {
			if entry.Value.Kind == tomlcst.KindInlineTable {
				rewriteInlineTableEntry(entry)
			} else if entry.Value.Kind != tomlcst.KindString {
				report.warn("project.entry-points", entry.Key, "unexpected value shape, left verbatim")
			}
		}
		sortEntries(tbl.Entries, func(a, b *tomlcst.Entry) bool {
			return a.RawKey < b.RawKey
		})
	}
	for _, tbl := range doc.Tables {
		if strings.HasPrefix(tbl.Name, "project.entry-points.") {
			sortEntries(tbl.Entries, func(a, b *tomlcst.Entry) bool {
				return a.RawKey < b.RawKey
			})
		}
	}
}

func rewriteOptionalDependencies(doc *tomlcst.Document, set Settings, report *Report) {
	tbl := doc.Table("project.optional-dependencies")
	if tbl == nil {
		return
	}
	for _, entry := range tbl.Entries {
		rewriteDependencyArray(entry, "project.optional-dependencies", set, report)
	}
	sortEntries(tbl.Entries, func(a, b *tomlcst.Entry) bool {
		return a.Key < b.Key
	})
}

// rewriteToolTables leaves [tool.*] alone except for collapsing runs of
// blank lines between entries.
func rewriteToolTables(doc *tomlcst.Document) {
	for _, tbl := range doc.Tables {
		if tbl.Name != "tool" && !strings.HasPrefix(tbl.Name, "tool.") {
			continue
		}
		for _, entry := range tbl.Entries {
			entry.LeadingTrivia = collapseBlankRuns(entry.LeadingTrivia)
		}
	}
}

func collapseBlankRuns(lines []string) []string {
	ret := lines[:0:0]
	blank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if blank {
				continue
			}
			blank = true
			ret = append(ret, line)
			continue
		}
		blank = false
		ret = append(ret, line)
	}
	return ret
}
