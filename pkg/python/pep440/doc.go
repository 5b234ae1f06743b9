// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package pep440 implements PEP 440 -- Version Identification and Dependency
// Specification.
//
// https://www.python.org/dev/peps/pep-0440/
//
// The package has two halves: the version scheme (parsing, normalization, and
// total ordering of version identifiers) and version specifiers (comma
// separated clauses such as `>=1.4.5,<2`, including the `~=` compatible
// release and `==X.*` prefix forms).
package pep440
