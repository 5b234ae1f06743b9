// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package pep503 implements PEP 503 -- Simple Repository API.
//
// Well, just the name normalization rule, which PEP 503 is the canonical
// home of and which later packaging specs reuse.
//
// https://www.python.org/dev/peps/pep-0503/
package pep503

import (
	"regexp"
	"strings"
)

var reSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeName normalizes a distribution name: lowercase, with every run of
// `-`, `_`, and `.` collapsed to a single `-`, and separators stripped from
// the ends.
func NormalizeName(str string) string {
	return strings.Trim(reSeparators.ReplaceAllString(strings.ToLower(str), "-"), "-")
}
