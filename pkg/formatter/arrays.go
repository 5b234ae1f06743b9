// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package formatter

import (
	"sort"
	"strings"

	"github.com/datawire/pyproject-fmt/pkg/python/pep508"
	"github.com/datawire/pyproject-fmt/pkg/tomlcst"
)

// rewriteStringArray re-renders an array of strings with the house layout,
// keeping the source element order.  Elements are re-quoted; comments stay
// attached.
func rewriteStringArray(entry *tomlcst.Entry, set Settings, report *Report, force bool) {
	if entry.Value.Kind != tomlcst.KindArray {
		report.warn("project", entry.Key, "expected an array, left verbatim")
		return
	}
	items, ok := stringItems(entry.Value.Array)
	if !ok {
		report.warn("project", entry.Key, "expected an array of strings, left verbatim")
		return
	}
	rewriteArrayEntry(entry, items, force, set)
}

func stringItems(arr *tomlcst.Array) ([]arrayItem, bool) {
	items := make([]arrayItem, 0, len(arr.Elems))
	for _, elem := range arr.Elems {
		if elem.Value.Kind != tomlcst.KindString {
			return nil, false
		}
		items = append(items, arrayItem{
			text:    encodeString(elem.Value.Str),
			comment: elem.Comment,
			leading: elem.LeadingTrivia,
		})
	}
	return items, true
}

// rewriteDependencyArray canonicalizes every dependency specifier in the
// array, sorts ascending by case-insensitive distribution name (with the
// full canonical text as tiebreak), and always expands.  An element that
// fails to parse is kept byte-verbatim and sorts by its whole string,
// lowercased.
func rewriteDependencyArray(entry *tomlcst.Entry, table string, set Settings, report *Report) {
	if entry.Value.Kind != tomlcst.KindArray {
		report.warn(table, entry.Key, "expected an array, left verbatim")
		return
	}
	arr := entry.Value.Array
	type depItem struct {
		item     arrayItem
		sortName string
		tiebreak string
	}
	items := make([]depItem, 0, len(arr.Elems))
	for _, elem := range arr.Elems {
		if elem.Value.Kind != tomlcst.KindString {
			report.warn(table, entry.Key, "expected an array of strings, left verbatim")
			return
		}
		it := depItem{item: arrayItem{comment: elem.Comment, leading: elem.LeadingTrivia}}
		req, err := pep508.ParseRequirement(elem.Value.Str)
		if err != nil {
			report.warn(table, entry.Key, err.Error())
			it.item.text = elem.Value.Raw
			it.sortName = strings.ToLower(elem.Value.Str)
			it.tiebreak = elem.Value.Str
		} else {
			if !set.KeepFullVersion {
				req.TrimReleaseZeros()
			}
			canonical := req.String()
			it.item.text = encodeString(canonical)
			it.sortName = strings.ToLower(req.Name)
			it.tiebreak = canonical
		}
		items = append(items, it)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].sortName != items[j].sortName {
			return items[i].sortName < items[j].sortName
		}
		return items[i].tiebreak < items[j].tiebreak
	})
	flat := make([]arrayItem, 0, len(items))
	for _, it := range items {
		flat = append(flat, it.item)
	}
	rewriteArrayEntry(entry, flat, true, set)
}

// rewritePeopleArray handles authors/maintainers: an array of inline tables,
// each re-rendered with sorted keys; source order of the people is kept.
func rewritePeopleArray(entry *tomlcst.Entry, set Settings, report *Report) {
	if entry.Value.Kind != tomlcst.KindArray {
		report.warn("project", entry.Key, "expected an array, left verbatim")
		return
	}
	arr := entry.Value.Array
	items := make([]arrayItem, 0, len(arr.Elems))
	for _, elem := range arr.Elems {
		item := arrayItem{comment: elem.Comment, leading: elem.LeadingTrivia}
		switch elem.Value.Kind {
		case tomlcst.KindInlineTable:
			item.text = renderInlineTable(elem.Value.Inline)
		case tomlcst.KindString:
			item.text = encodeString(elem.Value.Str)
		default:
			report.warn("project", entry.Key, "unexpected element shape, left verbatim")
			return
		}
		items = append(items, item)
	}
	rewriteArrayEntry(entry, items, false, set)
}

// rewriteInlineTableEntry re-renders an inline-table value with sorted keys
// and canonical spacing.
func rewriteInlineTableEntry(entry *tomlcst.Entry) {
	raw := renderInlineTable(entry.Value.Inline)
	entry.Sep = " = "
	entry.Value = &tomlcst.Value{
		Kind:   tomlcst.KindInlineTable,
		Raw:    raw,
		Inline: entry.Value.Inline,
	}
}

// sortEntries stable-sorts a table's entries in place.  An entry that moves
// loses its leading blank lines (comments travel with it); entries that stay
// put keep their trivia untouched.
func sortEntries(entries []*tomlcst.Entry, less func(a, b *tomlcst.Entry) bool) {
	before := make(map[*tomlcst.Entry]int, len(entries))
	for i, entry := range entries {
		before[entry] = i
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})
	for i, entry := range entries {
		if before[entry] == i {
			continue
		}
		kept := entry.LeadingTrivia[:0:0]
		for _, line := range entry.LeadingTrivia {
			if strings.TrimSpace(line) != "" {
				kept = append(kept, line)
			}
		}
		entry.LeadingTrivia = kept
	}
}
