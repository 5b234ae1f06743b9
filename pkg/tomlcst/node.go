// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package tomlcst

// Document is a parsed TOML file.  Root holds the key/value entries that
// appear before the first table header; Tables holds every named table in
// source order.  Trailing holds comment lines after the last entry.
type Document struct {
	Root     *Table
	Tables   []*Table
	Trailing []string
}

// Table is a table header plus the entries below it.  For Document.Root the
// header is empty.  Header is the raw header line (including any trailing
// comment); Name is the normalized dotted name with key quoting resolved.
type Table struct {
	LeadingTrivia []string
	Header        string
	Name          string
	IsArray       bool
	Entries       []*Entry
}

// Entry is a single `key = value` line (or, inside an inline table, a single
// `key = value` member).  RawKey and Sep preserve the author's exact spelling
// and spacing; Trailing is everything between the end of the value and the
// end of the line.
type Entry struct {
	LeadingTrivia []string
	RawKey        string
	Key           string
	Sep           string
	Value         *Value
	Trailing      string
}

type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindDatetime
	KindArray
	KindInlineTable
	// KindOther covers anything the rewriters never interpret; the raw text
	// is preserved verbatim.
	KindOther
)

type QuoteStyle int

const (
	QuoteBasic QuoteStyle = iota
	QuoteLiteral
	QuoteBasicMultiline
	QuoteLiteralMultiline
)

// Value is a single TOML value.  Raw is the exact source text (possibly
// spanning lines); the serializer emits Raw, so replacing a value means
// replacing Raw.  The decoded fields are only populated for the kinds the
// rewriters interpret.
type Value struct {
	Kind Kind
	Raw  string

	// KindString
	Str   string
	Quote QuoteStyle

	// KindInteger / KindBool
	Int  int64
	Bool bool

	// KindArray
	Array *Array

	// KindInlineTable
	Inline *InlineTable
}

// Array holds per-element trivia and the source layout (MultiLine reports
// whether the source spanned more than one physical line).
type Array struct {
	Elems     []*Elem
	MultiLine bool
	// Trailing holds comment lines between the last element and the `]`.
	Trailing []string
}

// Elem is one array element; Comment is a same-line comment following the
// element (after its comma, when present).
type Elem struct {
	LeadingTrivia []string
	Value         *Value
	Comment       string
}

type InlineTable struct {
	Entries []*Entry
}

// Table returns the top-level table with the given normalized dotted name,
// or nil.  The empty name returns the root table.
func (doc *Document) Table(name string) *Table {
	if name == "" {
		return doc.Root
	}
	for _, tbl := range doc.Tables {
		if tbl.Name == name && !tbl.IsArray {
			return tbl
		}
	}
	return nil
}

// Entry returns the entry with the given (normalized) key, or nil.
func (tbl *Table) Entry(key string) *Entry {
	for _, entry := range tbl.Entries {
		if entry.Key == key {
			return entry
		}
	}
	return nil
}

// RemoveEntry removes the entry with the given key and reports whether it was
// present.  The removed entry's leading trivia is dropped with it.
func (tbl *Table) RemoveEntry(key string) bool {
	for i, entry := range tbl.Entries {
		if entry.Key == key {
			tbl.Entries = append(tbl.Entries[:i], tbl.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// StringElems returns the decoded strings of an all-string array, or false if
// any element is not a string.
func (arr *Array) StringElems() ([]string, bool) {
	ret := make([]string, 0, len(arr.Elems))
	for _, elem := range arr.Elems {
		if elem.Value.Kind != KindString {
			return nil, false
		}
		ret = append(ret, elem.Value.Str)
	}
	return ret, true
}
