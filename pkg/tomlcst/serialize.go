// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package tomlcst

import (
	"strings"
)

// Serialize renders the document back to text.  Untouched nodes come out
// byte-for-byte; the result is always terminated by exactly one newline and
// never contains tab indentation that the author didn't write.
func (doc *Document) Serialize() []byte {
	var ret strings.Builder
	writeTable(&ret, doc.Root)
	for _, tbl := range doc.Tables {
		writeTable(&ret, tbl)
	}
	for _, line := range doc.Trailing {
		ret.WriteString(line)
		ret.WriteByte('\n')
	}
	out := ret.String()
	if out == "" {
		return []byte("\n")
	}
	return []byte(strings.TrimRight(out, "\n") + "\n")
}

func writeTable(ret *strings.Builder, tbl *Table) {
	for _, line := range tbl.LeadingTrivia {
		ret.WriteString(line)
		ret.WriteByte('\n')
	}
	if tbl.Header != "" {
		ret.WriteString(tbl.Header)
		ret.WriteByte('\n')
	}
	for _, entry := range tbl.Entries {
		for _, line := range entry.LeadingTrivia {
			ret.WriteString(line)
			ret.WriteByte('\n')
		}
		ret.WriteString(entry.RawKey)
		ret.WriteString(entry.Sep)
		ret.WriteString(entry.Value.Raw)
		ret.WriteString(entry.Trailing)
		ret.WriteByte('\n')
	}
}
