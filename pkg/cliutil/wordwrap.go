// Copyright (C) 2020  Ambassador Labs (for Telepresence)
// Copyright (C) 2021  Ambassador Labs (for ocibuild)
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"strings"
)

// Wrap the string `s` to a maximum width `w`.  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// Wrap the string `s` to a maximum width `w` with leading indent `i`.  The first line is not
// indented (this is assumed to be done by caller).  Pass `w` == 0 to do no wrapping
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 6` (one column tighter than Wrap).
func WrapIndent(i, w int, s string) string {
	if w == 0 {
		return s
	}
	return wrap(i, w-1, s)
}

func wrap(indent, width int, s string) string {
	if width == 0 {
		return s
	}
	limit := width - 5
	pad := strings.Repeat(" ", indent)
	isSpace := func(c byte) bool { return c == ' ' || c == '\t' || c == '\n' }

	var ret strings.Builder
	col := indent
	first := true
	for i := 0; i < len(s); {
		sepStart := i
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		sep := s[sepStart:i]
		wordStart := i
		for i < len(s) && !isSpace(s[i]) {
			i++
		}
		word := s[wordStart:i]
		if word == "" {
			break
		}
		switch {
		case first:
			first = false
		case col+len(sep)+len(word) > limit && col > indent:
			ret.WriteString("\n")
			ret.WriteString(pad)
			col = indent
		default:
			ret.WriteString(sep)
			col += len(sep)
		}
		ret.WriteString(word)
		col += len(word)
	}
	return ret.String()
}
