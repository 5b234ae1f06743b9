// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep440

import (
	"fmt"
	"strings"
)

// Specifier is a comma separated conjunction of version clauses, e.g.
// `~=0.9,>=1.0,!=1.3.4.*`.
type Specifier []SpecifierClause

func ParseSpecifier(str string) (Specifier, error) {
	clauseStrs := strings.FieldsFunc(str, func(r rune) bool { return r == ',' })
	ret := make(Specifier, 0, len(clauseStrs))
	for _, clauseStr := range clauseStrs {
		clauseStr = strings.TrimSpace(clauseStr)
		if clauseStr == "" {
			continue
		}
		clause, err := parseSpecifierClause(clauseStr)
		if err != nil {
			return nil, fmt.Errorf("pep440.ParseSpecifier: %w", err)
		}
		ret = append(ret, clause)
	}
	return ret, nil
}

// String renders the specifier with no whitespace, one clause per comma.
func (spec Specifier) String() string {
	clauses := make([]string, 0, len(spec))
	for _, clause := range spec {
		clauses = append(clauses, clause.String())
	}
	return strings.Join(clauses, ",")
}

func (spec Specifier) Match(ver Version) bool {
	for _, clause := range spec {
		if !clause.Match(ver) {
			return false
		}
	}
	return true
}

type CmpOp int

const (
	CmpOpCompatible CmpOp = iota
	CmpOpStrictMatch
	CmpOpPrefixMatch
	CmpOpStrictExclude
	CmpOpPrefixExclude
	CmpOpLE
	CmpOpGE
	CmpOpLT
	CmpOpGT
	_CmpOpEnd
)

func (op CmpOp) String() string {
	str, ok := map[CmpOp]string{
		CmpOpCompatible:    "~=",
		CmpOpStrictMatch:   "strict ==",
		CmpOpPrefixMatch:   "prefix ==",
		CmpOpStrictExclude: "strict !=",
		CmpOpPrefixExclude: "prefix !=",
		CmpOpLE:            "<=",
		CmpOpGE:            ">=",
		CmpOpLT:            "<",
		CmpOpGT:            ">",
	}[op]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", op))
	}
	return str
}

func (op CmpOp) match(spec, ver Version) bool {
	fn, ok := map[CmpOp]func(spec, ver Version) bool{
		CmpOpCompatible:    matchCompatible,
		CmpOpStrictMatch:   matchStrictMatch,
		CmpOpPrefixMatch:   matchPrefixMatch,
		CmpOpStrictExclude: matchStrictExclude,
		CmpOpPrefixExclude: matchPrefixExclude,
		CmpOpLE:            matchLE,
		CmpOpGE:            matchGE,
		CmpOpLT:            matchLT,
		CmpOpGT:            matchGT,
	}[op]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", op))
	}
	return fn(spec, ver)
}

type SpecifierClause struct {
	CmpOp   CmpOp
	Version Version
}

func parseSpecifierClause(str string) (SpecifierClause, error) {
	var ret SpecifierClause
	str = strings.TrimSpace(str)
	minSegments := 1
	devOK := true
	localOK := false
	switch {
	case strings.HasPrefix(str, "~="):
		ret.CmpOp = CmpOpCompatible
		str = str[2:]
		minSegments = 2
	case strings.HasPrefix(str, "==") && !strings.HasPrefix(str, "==="):
		ret.CmpOp = CmpOpStrictMatch
		str = str[2:]
		localOK = true
		if strings.HasSuffix(str, ".*") {
			ret.CmpOp = CmpOpPrefixMatch
			str = strings.TrimSuffix(str, ".*")
			devOK = false
			localOK = false
		}
	case strings.HasPrefix(str, "!="):
		ret.CmpOp = CmpOpStrictExclude
		str = str[2:]
		localOK = true
		if strings.HasSuffix(str, ".*") {
			ret.CmpOp = CmpOpPrefixExclude
			str = strings.TrimSuffix(str, ".*")
			devOK = false
			localOK = false
		}
	case strings.HasPrefix(str, "<="):
		ret.CmpOp = CmpOpLE
		str = str[2:]
	case strings.HasPrefix(str, ">="):
		ret.CmpOp = CmpOpGE
		str = str[2:]
	case strings.HasPrefix(str, "<"):
		ret.CmpOp = CmpOpLT
		str = str[1:]
	case strings.HasPrefix(str, ">"):
		ret.CmpOp = CmpOpGT
		str = str[1:]
	case strings.HasPrefix(str, "==="):
		return ret, fmt.Errorf("specifiers with === are not supported; versions must be PEP 440 compliant")
	default:
		return ret, fmt.Errorf("invalid comparison operator: %q", str)
	}
	ver, err := ParseVersion(str)
	if err != nil {
		return ret, err
	}
	if len(ver.Release) < minSegments {
		return ret, fmt.Errorf("at least %d release segments required in %s specifier clauses",
			minSegments, ret.CmpOp)
	}
	if ver.Dev != nil && !devOK {
		return ret, fmt.Errorf("dev-part not permitted in %s specifier clauses", ret.CmpOp)
	}
	if len(ver.Local) > 0 && !localOK {
		return ret, fmt.Errorf("local-part not permitted in %s specifier clauses", ret.CmpOp)
	}
	ret.Version = *ver
	return ret, nil
}

// String renders the clause without whitespace; prefix clauses get their
// trailing `.*` back.
func (spec SpecifierClause) String() string {
	opStr, ok := map[CmpOp]string{
		CmpOpCompatible:    "~=",
		CmpOpStrictMatch:   "==",
		CmpOpPrefixMatch:   "==",
		CmpOpStrictExclude: "!=",
		CmpOpPrefixExclude: "!=",
		CmpOpLE:            "<=",
		CmpOpGE:            ">=",
		CmpOpLT:            "<",
		CmpOpGT:            ">",
	}[spec.CmpOp]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", spec.CmpOp))
	}
	suffix := ""
	if spec.CmpOp == CmpOpPrefixMatch || spec.CmpOp == CmpOpPrefixExclude {
		suffix = ".*"
	}
	return opStr + spec.Version.String() + suffix
}

func (spec SpecifierClause) Match(ver Version) bool {
	return spec.CmpOp.match(spec.Version, ver)
}

// `~= V.N` is approximately `>= V.N, == V.*`; the suffix (if any) is ignored
// when determining the prefix.
func matchCompatible(spec, ver Version) bool {
	prefix := spec
	prefix.Release = prefix.Release[:len(prefix.Release)-1]
	prefix.Pre = nil
	prefix.Post = nil
	prefix.Dev = nil
	return matchGE(spec, ver) && matchPrefixMatch(prefix, ver)
}

// Strict matching zero-pads the release segments; a local label on the spec
// side requires a strict label match, a public spec ignores the candidate's
// label.
func matchStrictMatch(spec, ver Version) bool {
	if len(spec.Local) == 0 {
		return spec.PublicVersion.Cmp(ver.PublicVersion) == 0
	}
	return spec.Cmp(ver) == 0
}

func matchPrefixMatch(_spec, _ver Version) bool {
	spec, ver := _spec.PublicVersion, _ver.PublicVersion
	const (
		partRel = iota
		partPre
		partPost
	)
	// terminalPart identifies the terminal part of spec's version
	var terminalPart int
	switch {
	case spec.Post != nil:
		terminalPart = partPost
	case spec.Pre != nil:
		terminalPart = partPre
	default:
		terminalPart = partRel
	}

	if spec.Epoch != ver.Epoch {
		return false
	}

	if terminalPart == partRel {
		if len(ver.Release) > len(spec.Release) {
			ver.Release = ver.Release[:len(spec.Release)]
		}
	}
	if cmpRelease(spec, ver) != 0 {
		return false
	}
	if terminalPart == partRel {
		return true
	}

	// Done by hand instead of with cmpPreRelease because cmpPreRelease also
	// takes .Post and .Dev in to account.
	if (ver.Pre == nil) != (spec.Pre == nil) {
		return false
	} else if spec.Pre != nil && (preReleaseOrder[ver.Pre.L] != preReleaseOrder[spec.Pre.L] ||
		ver.Pre.N != spec.Pre.N) {
		return false
	}
	if terminalPart == partPre {
		return true
	}

	if cmpPostRelease(spec, ver) != 0 {
		return false
	}
	if terminalPart == partPost {
		return true
	}

	panic("not reached")
}

func matchStrictExclude(spec, ver Version) bool {
	return !matchStrictMatch(spec, ver)
}

func matchPrefixExclude(spec, ver Version) bool {
	return !matchPrefixMatch(spec, ver)
}

func matchLE(spec, ver Version) bool {
	return spec.Cmp(ver) >= 0
}

func matchGE(spec, ver Version) bool {
	return spec.Cmp(ver) <= 0
}

func matchLT(spec, ver Version) bool {
	return spec.Cmp(ver) > 0
}

func matchGT(spec, ver Version) bool {
	return spec.Cmp(ver) < 0
}
