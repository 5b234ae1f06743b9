// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package formatter

import (
	"sort"
	"strings"

	"github.com/datawire/pyproject-fmt/pkg/python/pep345"
	"github.com/datawire/pyproject-fmt/pkg/python/pep503"
	"github.com/datawire/pyproject-fmt/pkg/tomlcst"
)

// projectKeyOrder is the opinionated ordering of [project] keys.  Keys not
// in this list keep their relative source order after the known ones.
//
//nolint:gochecknoglobals // Would be 'const'.
var projectKeyOrder = []string{
	"name",
	"version",
	"description",
	"readme",
	"keywords",
	"license",
	"license-files",
	"authors",
	"maintainers",
	"requires-python",
	"classifiers",
	"dynamic",
	"dependencies",
	"optional-dependencies",
	"urls",
	"scripts",
	"gui-scripts",
	"entry-points",
}

func rewriteProject(doc *tomlcst.Document, set Settings, report *Report) {
	tbl := doc.Table("project")
	if tbl == nil {
		return
	}

	rewriteProjectClassifiers(tbl, set, report)

	for _, entry := range tbl.Entries {
		switch entry.Key {
		case "name":
			if s, ok := stringOf(entry); ok {
				setString(entry, pep503.NormalizeName(s))
			} else {
				report.warn("project", entry.Key, "expected a string, left verbatim")
			}
		case "description":
			if s, ok := stringOf(entry); ok {
				setString(entry, collapseWhitespace(s))
			} else {
				report.warn("project", entry.Key, "expected a string, left verbatim")
			}
		case "version", "requires-python":
			if s, ok := stringOf(entry); ok {
				setString(entry, s)
			}
		case "readme", "license":
			switch entry.Value.Kind {
			case tomlcst.KindString:
				setString(entry, entry.Value.Str)
			case tomlcst.KindInlineTable:
				rewriteInlineTableEntry(entry)
			default:
				report.warn("project", entry.Key, "unexpected value shape, left verbatim")
			}
		case "keywords", "dynamic", "license-files":
			rewriteStringArray(entry, set, report, false)
		case "classifiers":
			// handled by rewriteProjectClassifiers
		case "authors", "maintainers":
			rewritePeopleArray(entry, set, report)
		case "urls", "scripts", "gui-scripts", "entry-points":
			if entry.Value.Kind == tomlcst.KindInlineTable {
				rewriteInlineTableEntry(entry)
			}
		case "dependencies":
			rewriteDependencyArray(entry, "project", set, report)
		case "optional-dependencies":
			// Normally a sub-table; as an inline value there is no layout to
			// fix without restructuring, so leave it alone.
		}
	}

	sortEntries(tbl.Entries, func(a, b *tomlcst.Entry) bool {
		ai, bi := projectKeyIndex(a.Key), projectKeyIndex(b.Key)
		return ai < bi
	})
}

func projectKeyIndex(key string) int {
	for i, known := range projectKeyOrder {
		if key == known {
			return i
		}
	}
	return len(projectKeyOrder)
}

func stringOf(entry *tomlcst.Entry) (string, bool) {
	if entry.Value.Kind != tomlcst.KindString {
		return "", false
	}
	return entry.Value.Str, true
}

// rewriteProjectClassifiers sorts the classifiers array and, when a
// parseable requires-python constraint is present, replaces the
// `Programming Language :: Python :: 3*` entries with the synthesized set
// (creating the classifiers entry if the document has none).  Author
// comments on surviving elements stay attached to them.
func rewriteProjectClassifiers(tbl *tomlcst.Table, set Settings, report *Report) {
	var constraint pep345.VersionSpecifier
	haveConstraint := false
	if reqEntry := tbl.Entry("requires-python"); reqEntry != nil && reqEntry.Value.Kind == tomlcst.KindString {
		parsed, err := pep345.ParseVersionSpecifier(reqEntry.Value.Str)
		if err != nil {
			report.warn("project", "requires-python", err.Error())
		} else {
			constraint = parsed
			haveConstraint = true
		}
	}

	clsEntry := tbl.Entry("classifiers")
	if clsEntry == nil {
		if !haveConstraint {
			return
		}
		clsEntry = &tomlcst.Entry{
			RawKey: "classifiers",
			Key:    "classifiers",
			Sep:    " = ",
			Value:  &tomlcst.Value{Kind: tomlcst.KindArray, Array: &tomlcst.Array{MultiLine: true}},
		}
		tbl.Entries = append(tbl.Entries, clsEntry)
	}
	if clsEntry.Value.Kind != tomlcst.KindArray {
		report.warn("project", "classifiers", "expected an array, left verbatim")
		return
	}
	arr := clsEntry.Value.Array

	type clsItem struct {
		text string // decoded classifier
		item arrayItem
	}
	var items []clsItem
	var existing []string
	for _, elem := range arr.Elems {
		if elem.Value.Kind != tomlcst.KindString {
			report.warn("project", "classifiers", "expected an array of strings, left verbatim")
			return
		}
		existing = append(existing, elem.Value.Str)
		if haveConstraint && strings.HasPrefix(elem.Value.Str, classifierPythonPrefix) {
			// replaced by the synthesized entries below
			continue
		}
		items = append(items, clsItem{
			text: elem.Value.Str,
			item: arrayItem{
				text:    encodeString(elem.Value.Str),
				comment: elem.Comment,
				leading: elem.LeadingTrivia,
			},
		})
	}
	if haveConstraint {
		supported := supportedPythonVersions(existing, constraint, set)
		for _, classifier := range pythonClassifiers(supported) {
			items = append(items, clsItem{
				text: classifier,
				item: arrayItem{text: encodeString(classifier)},
			})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return naturalCmp(items[i].text, items[j].text) < 0
	})
	flat := make([]arrayItem, 0, len(items))
	for _, it := range items {
		flat = append(flat, it.item)
	}
	rewriteArrayEntry(clsEntry, flat, true, set)
}
