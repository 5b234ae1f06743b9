// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package tomlcst

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// ParseError reports structurally invalid TOML.  It is the only error that
// escapes a format call.
type ParseError struct {
	Msg    string
	Line   int
	Col    int
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid TOML at line %d, column %d (byte %d): %s",
		e.Line, e.Col, e.Offset, e.Msg)
}

// Parse parses src into a lossless document tree.  CRLF line endings are
// normalized to LF before parsing; everything else round-trips byte-for-byte.
func Parse(src []byte) (*Document, error) {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")

	// Strict validation first, so the lenient CST scan below only ever runs
	// on well-formed input.
	var scratch map[string]interface{}
	if err := toml.Unmarshal([]byte(text), &scratch); err != nil {
		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			return nil, &ParseError{
				Msg:    parseErr.Message,
				Line:   parseErr.Position.Line,
				Col:    parseErr.Position.Col,
				Offset: parseErr.Position.Start,
			}
		}
		return nil, &ParseError{Msg: err.Error(), Line: 1, Col: 1}
	}

	p := &scanner{src: text}
	doc := &Document{Root: &Table{}}
	cur := doc.Root
	var trivia []string

	for !p.eof() {
		line := p.peekLine()
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			trivia = append(trivia, line)
			p.skipLine()
		case strings.HasPrefix(trimmed, "["):
			cur = &Table{
				LeadingTrivia: trivia,
				Header:        line,
				Name:          headerName(trimmed),
				IsArray:       strings.HasPrefix(trimmed, "[["),
			}
			trivia = nil
			doc.Tables = append(doc.Tables, cur)
			p.skipLine()
		default:
			entry := p.scanEntry()
			entry.LeadingTrivia = trivia
			trivia = nil
			cur.Entries = append(cur.Entries, entry)
		}
	}
	// Drop trailing blank lines; the serializer terminates the document with
	// exactly one newline.
	for len(trivia) > 0 && strings.TrimSpace(trivia[len(trivia)-1]) == "" {
		trivia = trivia[:len(trivia)-1]
	}
	doc.Trailing = trivia
	return doc, nil
}

// headerName normalizes a `[a.b."c.d"]` header line to the dotted name
// `a.b.c.d`.
func headerName(trimmed string) string {
	inner := strings.TrimPrefix(trimmed, "[")
	inner = strings.TrimPrefix(inner, "[")
	if i := strings.IndexByte(inner, ']'); i >= 0 {
		inner = inner[:i]
	}
	segs := splitKey(inner)
	for i, seg := range segs {
		segs[i] = unquoteKey(seg)
	}
	return strings.Join(segs, ".")
}

// splitKey splits a dotted key on dots that are outside quotes.
func splitKey(key string) []string {
	var segs []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == '.':
			segs = append(segs, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	segs = append(segs, strings.TrimSpace(cur.String()))
	return segs
}

func unquoteKey(seg string) string {
	if len(seg) >= 2 && (seg[0] == '"' || seg[0] == '\'') {
		str, _, err := DecodeString(seg)
		if err == nil {
			return str
		}
	}
	return seg
}

type scanner struct {
	src string
	pos int
}

func (p *scanner) eof() bool { return p.pos >= len(p.src) }

// peekLine returns the current line without its newline, leaving pos alone.
func (p *scanner) peekLine() string {
	end := strings.IndexByte(p.src[p.pos:], '\n')
	if end < 0 {
		return p.src[p.pos:]
	}
	return p.src[p.pos : p.pos+end]
}

func (p *scanner) skipLine() {
	end := strings.IndexByte(p.src[p.pos:], '\n')
	if end < 0 {
		p.pos = len(p.src)
	} else {
		p.pos += end + 1
	}
}

// scanEntry consumes one `key = value` entry, including a value that spans
// multiple lines, and the remainder of its final line.
func (p *scanner) scanEntry() *Entry {
	start := p.pos
	var quote byte
	eq := -1
	for i := p.pos; i < len(p.src); i++ {
		c := p.src[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		if c == '"' || c == '\'' {
			quote = c
			continue
		}
		if c == '=' {
			eq = i
			break
		}
	}
	rawKeyFull := p.src[start:eq]
	rawKey := strings.TrimRight(rawKeyFull, " \t")
	sep := rawKeyFull[len(rawKey):] + "="
	p.pos = eq + 1
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		sep += string(p.src[p.pos])
		p.pos++
	}

	rawValue := p.scanValue("\n#")
	val := parseValue(rawValue)

	lineEnd := strings.IndexByte(p.src[p.pos:], '\n')
	var trailing string
	if lineEnd < 0 {
		trailing = p.src[p.pos:]
		p.pos = len(p.src)
	} else {
		trailing = p.src[p.pos : p.pos+lineEnd]
		p.pos += lineEnd + 1
	}

	segs := splitKey(rawKey)
	for i, seg := range segs {
		segs[i] = unquoteKey(seg)
	}
	return &Entry{
		RawKey:   rawKey,
		Key:      strings.Join(segs, "."),
		Sep:      sep,
		Value:    val,
		Trailing: trailing,
	}
}

// scanValue consumes one value starting at pos and returns its exact text.
// For scalars the value ends at (but does not consume) any byte in
// terminators; strings, arrays, and inline tables end at their own closing
// delimiter.
func (p *scanner) scanValue(terminators string) string {
	start := p.pos
	switch {
	case strings.HasPrefix(p.src[p.pos:], `"""`):
		p.pos += 3
		p.skipMultilineString(`"`, true)
	case strings.HasPrefix(p.src[p.pos:], `'''`):
		p.pos += 3
		p.skipMultilineString(`'`, false)
	case strings.HasPrefix(p.src[p.pos:], `"`):
		p.pos++
		p.skipBasicString()
	case strings.HasPrefix(p.src[p.pos:], `'`):
		p.pos++
		for p.pos < len(p.src) && p.src[p.pos] != '\'' {
			p.pos++
		}
		p.pos++
	case strings.HasPrefix(p.src[p.pos:], "["):
		p.skipBracketed()
	case strings.HasPrefix(p.src[p.pos:], "{"):
		p.skipBracketed()
	default:
		for p.pos < len(p.src) && !strings.ContainsRune(terminators, rune(p.src[p.pos])) {
			p.pos++
		}
		raw := strings.TrimRight(p.src[start:p.pos], " \t")
		p.pos = start + len(raw)
		return raw
	}
	return p.src[start:p.pos]
}

func (p *scanner) skipBasicString() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
		case '"':
			p.pos++
			return
		default:
			p.pos++
		}
	}
}

// skipMultilineString consumes the body and closing delimiter of a
// multi-line string whose opening delimiter has already been consumed.  A
// run of quote characters longer than the delimiter leaves the extra quotes
// inside the string content, per the TOML grammar.
func (p *scanner) skipMultilineString(q string, escapes bool) {
	delim := strings.Repeat(q, 3)
	for p.pos < len(p.src) {
		if escapes && p.src[p.pos] == '\\' {
			p.pos += 2
			continue
		}
		if strings.HasPrefix(p.src[p.pos:], delim) {
			run := 3
			for p.pos+run < len(p.src) && run < 5 && string(p.src[p.pos+run]) == q {
				run++
			}
			p.pos += run
			return
		}
		p.pos++
	}
}

// skipBracketed consumes a (possibly nested, possibly multi-line) array or
// inline table, skipping over strings and comments.
func (p *scanner) skipBracketed() {
	depth := 0
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case '[', '{':
			depth++
			p.pos++
		case ']', '}':
			depth--
			p.pos++
			if depth == 0 {
				return
			}
		case '"', '\'':
			p.scanValue("")
		case '#':
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			p.pos++
		}
	}
}

// parseValue classifies the exact text of one value and decodes the kinds
// the rewriters care about.  Unknown shapes are preserved as KindOther.
func parseValue(raw string) *Value {
	val := &Value{Raw: raw, Kind: KindOther}
	if raw == "" {
		return val
	}
	switch raw[0] {
	case '"', '\'':
		str, quote, err := DecodeString(raw)
		if err == nil {
			val.Kind = KindString
			val.Str = str
			val.Quote = quote
		}
	case '[':
		val.Kind = KindArray
		val.Array = parseArray(raw)
	case '{':
		val.Kind = KindInlineTable
		val.Inline = parseInlineTable(raw)
	default:
		switch {
		case raw == "true" || raw == "false":
			val.Kind = KindBool
			val.Bool = raw == "true"
		case isInteger(raw):
			val.Kind = KindInteger
			val.Int, _ = strconv.ParseInt(strings.ReplaceAll(raw, "_", ""), 0, 64)
		case isFloat(raw):
			val.Kind = KindFloat
		case strings.ContainsAny(raw, "-:"):
			val.Kind = KindDatetime
		}
	}
	return val
}

func isInteger(raw string) bool {
	_, err := strconv.ParseInt(strings.ReplaceAll(raw, "_", ""), 0, 64)
	return err == nil
}

func isFloat(raw string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	return err == nil
}

func parseArray(raw string) *Array {
	arr := &Array{MultiLine: strings.ContainsRune(raw, '\n')}
	p := &scanner{src: raw, pos: 1} // after '['
	var pending []string
	var last *Elem
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t':
			p.pos++
		case c == '\n':
			last = nil
			p.pos++
		case c == ']':
			arr.Trailing = pending
			return arr
		case c == ',':
			p.pos++
		case c == '#':
			start := p.pos
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
			comment := raw[start:p.pos]
			if last != nil && last.Comment == "" {
				last.Comment = comment
			} else {
				pending = append(pending, comment)
			}
		default:
			rawElem := p.scanValue(",]#\n")
			elem := &Elem{LeadingTrivia: pending, Value: parseValue(rawElem)}
			pending = nil
			arr.Elems = append(arr.Elems, elem)
			last = elem
		}
	}
	return arr
}

func parseInlineTable(raw string) *InlineTable {
	tbl := &InlineTable{}
	p := &scanner{src: raw, pos: 1} // after '{'
	for p.pos < len(p.src) {
		for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == ',') {
			p.pos++
		}
		if p.pos >= len(p.src) || p.src[p.pos] == '}' {
			return tbl
		}
		keyStart := p.pos
		var quote byte
		for p.pos < len(p.src) {
			c := p.src[p.pos]
			if quote != 0 {
				if c == quote {
					quote = 0
				}
				p.pos++
				continue
			}
			if c == '"' || c == '\'' {
				quote = c
				p.pos++
				continue
			}
			if c == '=' {
				break
			}
			p.pos++
		}
		rawKeyFull := raw[keyStart:p.pos]
		rawKey := strings.TrimRight(rawKeyFull, " \t")
		sep := rawKeyFull[len(rawKey):] + "="
		p.pos++ // '='
		for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
			sep += string(p.src[p.pos])
			p.pos++
		}
		rawValue := p.scanValue(",}")
		segs := splitKey(rawKey)
		for i, seg := range segs {
			segs[i] = unquoteKey(seg)
		}
		tbl.Entries = append(tbl.Entries, &Entry{
			RawKey: rawKey,
			Key:    strings.Join(segs, "."),
			Sep:    sep,
			Value:  parseValue(rawValue),
		})
	}
	return tbl
}
