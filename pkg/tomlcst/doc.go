// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package tomlcst implements a format-preserving concrete syntax tree for
// TOML v1.0.0 documents.
//
// https://toml.io/en/v1.0.0
//
// Unlike the usual marshal/unmarshal TOML packages, tomlcst keeps every byte
// of the source attached to the tree: comments, blank lines, key spacing, and
// the exact text of every value.  Serializing an unmodified document yields
// the input back.  Rewriters mutate individual values (or re-render whole
// entries) and everything they did not touch comes out verbatim.
//
// Structural validation is delegated to github.com/BurntSushi/toml; tomlcst
// itself is a lenient lexer that only runs on documents that already passed
// that validation, which is what lets it stay small.
package tomlcst
