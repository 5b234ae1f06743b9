// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package formatter

import (
	"sort"
	"strings"

	"github.com/datawire/pyproject-fmt/pkg/tomlcst"
)

// arrayItem is one element of an array being re-rendered: the rendered value
// text plus the comments that must stay attached to it.
type arrayItem struct {
	text    string
	comment string
	leading []string
}

func itemsFromArray(arr *tomlcst.Array) []arrayItem {
	ret := make([]arrayItem, 0, len(arr.Elems))
	for _, elem := range arr.Elems {
		ret = append(ret, arrayItem{
			text:    elem.Value.Raw,
			comment: elem.Comment,
			leading: elem.LeadingTrivia,
		})
	}
	return ret
}

func itemsHaveComments(items []arrayItem) bool {
	for _, item := range items {
		if item.comment != "" || len(item.leading) > 0 {
			return true
		}
	}
	return false
}

// renderInline renders `[ e1, e2 ]` (or `[]`), single space padded.  Only
// valid for comment-free items.
func renderInline(items []arrayItem) string {
	if len(items) == 0 {
		return "[]"
	}
	texts := make([]string, 0, len(items))
	for _, item := range items {
		texts = append(texts, item.text)
	}
	return "[ " + strings.Join(texts, ", ") + " ]"
}

// renderExpanded renders one element per line, indented, every element
// terminated by a comma, the closing bracket on its own line at column zero.
func renderExpanded(items []arrayItem, trailing []string, indent int) string {
	pad := strings.Repeat(" ", indent)
	var ret strings.Builder
	ret.WriteString("[\n")
	for _, item := range items {
		for _, line := range item.leading {
			ret.WriteString(pad)
			ret.WriteString(line)
			ret.WriteString("\n")
		}
		ret.WriteString(pad)
		ret.WriteString(item.text)
		ret.WriteString(",")
		if item.comment != "" {
			ret.WriteString(" ")
			ret.WriteString(item.comment)
		}
		ret.WriteString("\n")
	}
	for _, line := range trailing {
		ret.WriteString(pad)
		ret.WriteString(line)
		ret.WriteString("\n")
	}
	ret.WriteString("]")
	return ret.String()
}

// rewriteArrayEntry re-renders an array-valued entry with the house layout:
// expanded when the source was expanded, when comments are present, when the
// inline form would overflow ColumnWidth, or when the table rules force it;
// inline (space padded) otherwise.  The entry is re-rendered as `key = [...]`
// regardless of the author's spacing.
func rewriteArrayEntry(entry *tomlcst.Entry, items []arrayItem, force bool, set Settings) {
	arr := entry.Value.Array
	expand := force || arr.MultiLine || itemsHaveComments(items) || len(arr.Trailing) > 0
	var raw string
	switch {
	case len(items) == 0 && len(arr.Trailing) == 0:
		raw = "[]"
	case !expand:
		raw = renderInline(items)
		if len(entry.RawKey)+len(" = ")+len(raw) > set.ColumnWidth {
			raw = renderExpanded(items, arr.Trailing, set.Indent)
		}
	default:
		raw = renderExpanded(items, arr.Trailing, set.Indent)
	}
	entry.Sep = " = "
	entry.Value = &tomlcst.Value{Kind: tomlcst.KindArray, Raw: raw, Array: arr}
}

// renderInlineTable renders `{k = v,k2 = v2}` with entries sorted ascending
// by raw key and string values re-encoded with the house quote policy.
func renderInlineTable(tbl *tomlcst.InlineTable) string {
	entries := make([]*tomlcst.Entry, len(tbl.Entries))
	copy(entries, tbl.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RawKey < entries[j].RawKey
	})
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, entry.RawKey+" = "+renderValueCanonical(entry.Value))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// renderValueCanonical re-encodes strings and nested inline tables; any
// other value keeps its source spelling.
func renderValueCanonical(val *tomlcst.Value) string {
	switch val.Kind {
	case tomlcst.KindString:
		return encodeString(val.Str)
	case tomlcst.KindInlineTable:
		return renderInlineTable(val.Inline)
	default:
		return val.Raw
	}
}
