// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package pep508 implements PEP 508 -- Dependency specification for Python
// Software Packages.
//
// https://www.python.org/dev/peps/pep-0508/
//
// A requirement is a distribution name, optional extras, then either a
// version specifier (PEP 440) or a direct URL reference, then an optional
// environment marker expression.  Parsing and re-serialization are separate
// concerns: String renders the canonical spelling of the parsed form, which
// is generally not the spelling that was parsed.
package pep508

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/datawire/pyproject-fmt/pkg/python/pep440"
)

var (
	reName  = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?`)
	reExtra = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)
)

type Requirement struct {
	Name      string
	Extras    []string
	Specifier pep440.Specifier
	URL       string
	Marker    *Marker
}

// ParseRequirement parses a PEP 508 dependency specification.
func ParseRequirement(str string) (*Requirement, error) {
	ret := &Requirement{}
	rest := strings.TrimSpace(str)

	name := reName.FindString(rest)
	if name == "" {
		return nil, fmt.Errorf("pep508.ParseRequirement: no distribution name in %q", str)
	}
	ret.Name = name
	rest = strings.TrimLeft(rest[len(name):], " \t")

	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("pep508.ParseRequirement: unterminated extras in %q", str)
		}
		for _, extra := range strings.Split(rest[1:end], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				continue
			}
			if !reExtra.MatchString(extra) {
				return nil, fmt.Errorf("pep508.ParseRequirement: invalid extra %q in %q", extra, str)
			}
			ret.Extras = append(ret.Extras, extra)
		}
		rest = strings.TrimLeft(rest[end+1:], " \t")
	}

	var markerStr string
	if strings.HasPrefix(rest, "@") {
		// Direct reference.  The URL runs until whitespace followed by a
		// semicolon; a bare semicolon may be part of the URL itself.
		rest = strings.TrimLeft(rest[1:], " \t")
		urlEnd := len(rest)
		for i := 1; i < len(rest); i++ {
			if rest[i] == ';' && (rest[i-1] == ' ' || rest[i-1] == '\t') {
				urlEnd = i
				markerStr = rest[i+1:]
				break
			}
		}
		ret.URL = strings.TrimSpace(rest[:urlEnd])
		if ret.URL == "" {
			return nil, fmt.Errorf("pep508.ParseRequirement: empty URL in %q", str)
		}
	} else {
		verStr := rest
		if i := strings.IndexByte(rest, ';'); i >= 0 {
			verStr = rest[:i]
			markerStr = rest[i+1:]
		}
		verStr = strings.TrimSpace(verStr)
		// Parenthesized version specifiers are a legacy spelling.
		if strings.HasPrefix(verStr, "(") && strings.HasSuffix(verStr, ")") {
			verStr = strings.TrimSpace(verStr[1 : len(verStr)-1])
		}
		if verStr != "" {
			spec, err := pep440.ParseSpecifier(verStr)
			if err != nil {
				return nil, fmt.Errorf("pep508.ParseRequirement: %q: %w", str, err)
			}
			ret.Specifier = spec
		}
	}

	if strings.TrimSpace(markerStr) != "" {
		marker, err := ParseMarker(markerStr)
		if err != nil {
			return nil, fmt.Errorf("pep508.ParseRequirement: %q: %w", str, err)
		}
		ret.Marker = marker
	}

	return ret, nil
}

// String renders the canonical spelling: no space inside the name, extras,
// or version clauses; `; ` before a marker, or ` ; ` when a URL precedes it
// (the whitespace is what terminates the URL).
func (r Requirement) String() string {
	var ret strings.Builder
	ret.WriteString(r.Name)
	if len(r.Extras) > 0 {
		ret.WriteString("[")
		ret.WriteString(strings.Join(r.Extras, ","))
		ret.WriteString("]")
	}
	if r.URL != "" {
		ret.WriteString("@ ")
		ret.WriteString(r.URL)
		if r.Marker != nil {
			ret.WriteString(" ; ")
			ret.WriteString(r.Marker.String())
		}
		return ret.String()
	}
	ret.WriteString(r.Specifier.String())
	if r.Marker != nil {
		ret.WriteString("; ")
		ret.WriteString(r.Marker.String())
	}
	return ret.String()
}

// TrimReleaseZeros strips trailing `.0` release segments from every pinned
// version clause, down to (but not past) one segment -- two for `~=`, which
// requires at least two.  Clauses carrying pre/post/dev/local parts and
// prefix (`.*`) clauses are left alone.
func (r *Requirement) TrimReleaseZeros() {
	for i := range r.Specifier {
		clause := &r.Specifier[i]
		if clause.CmpOp == pep440.CmpOpPrefixMatch || clause.CmpOp == pep440.CmpOpPrefixExclude {
			continue
		}
		ver := &clause.Version
		if ver.Pre != nil || ver.Post != nil || ver.Dev != nil || len(ver.Local) > 0 {
			continue
		}
		keep := 1
		if clause.CmpOp == pep440.CmpOpCompatible {
			keep = 2
		}
		for len(ver.Release) > keep && ver.Release[len(ver.Release)-1] == 0 {
			ver.Release = ver.Release[:len(ver.Release)-1]
		}
	}
}
