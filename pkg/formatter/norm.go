// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package formatter

import (
	"strings"

	"github.com/datawire/pyproject-fmt/pkg/tomlcst"
)

// encodeString renders s as a TOML string with the house quote policy:
// double quotes, unless the content contains a double quote (then literal
// single quotes), unless it contains both kinds (then double quotes with
// escapes).
func encodeString(s string) string {
	if strings.Contains(s, `"`) &&
		!strings.Contains(s, `'`) &&
		!strings.ContainsAny(s, "\\\n\t\r\b\f") {
		return tomlcst.EncodeLiteralString(s)
	}
	return tomlcst.EncodeBasicString(s)
}

// setString replaces an entry's value with a freshly-encoded string, leaving
// the entry's key spelling and spacing alone.
func setString(entry *tomlcst.Entry, s string) {
	raw := encodeString(s)
	if entry.Value.Kind == tomlcst.KindString && entry.Value.Raw == raw {
		return
	}
	quote := tomlcst.QuoteBasic
	if strings.HasPrefix(raw, "'") {
		quote = tomlcst.QuoteLiteral
	}
	entry.Value = tomlcst.StringValue(s, raw, quote)
}

// collapseWhitespace rewrites any run of whitespace (including newlines and
// the indentation of continuation lines) to a single space and trims the
// ends.  Used for prose fields that allow multi-line strings.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
