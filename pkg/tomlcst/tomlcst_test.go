// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package tomlcst_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pyproject-fmt/pkg/testutil"
	"github.com/datawire/pyproject-fmt/pkg/tomlcst"
)

const gnarly = `# top comment

[build-system]
build-backend = "hatchling.build"   # backend
requires = [ # lead
  "hatchling", # pinned elsewhere
  # a lone comment
  'tomli; python_version < "3.11"',
]

[project]
name='demo'
description = """A multi-line
  description."""
dynamic = ["version"]
numbers = [1, 2, 3]
when = 1979-05-27T07:32:00Z
ratio = 0.25
big = 1_000

[project.entry-points]
alpha = {B = "b", "A.A" = "a"}

[[project.authors]]
name = "Someone"

[tool.other]
nested = { a = 1, b = [ "x" ] }
`

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	doc, err := tomlcst.Parse([]byte(gnarly))
	require.NoError(t, err)
	testutil.AssertEqualText(t, gnarly, string(doc.Serialize()))
}

func TestRoundTripAddsFinalNewline(t *testing.T) {
	t.Parallel()
	doc, err := tomlcst.Parse([]byte(`a = 1`))
	require.NoError(t, err)
	assert.Equal(t, "a = 1\n", string(doc.Serialize()))
}

func TestParseError(t *testing.T) {
	t.Parallel()
	for _, input := range []string{
		"[project\n",
		"a = \n",
		"a = 1\na = 2\n",
	} {
		input := input
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			_, err := tomlcst.Parse([]byte(input))
			require.Error(t, err)
			var parseErr *tomlcst.ParseError
			require.True(t, errors.As(err, &parseErr), "error type: %v", err)
			assert.Greater(t, parseErr.Line, 0)
		})
	}
}

func TestTree(t *testing.T) {
	t.Parallel()
	doc, err := tomlcst.Parse([]byte(gnarly))
	require.NoError(t, err)

	project := doc.Table("project")
	require.NotNil(t, project)

	name := project.Entry("name")
	require.NotNil(t, name)
	assert.Equal(t, tomlcst.KindString, name.Value.Kind)
	assert.Equal(t, "demo", name.Value.Str)
	assert.Equal(t, tomlcst.QuoteLiteral, name.Value.Quote)
	assert.Equal(t, "=", name.Sep)

	desc := project.Entry("description")
	require.NotNil(t, desc)
	assert.Equal(t, tomlcst.QuoteBasicMultiline, desc.Value.Quote)
	assert.Equal(t, "A multi-line\n  description.", desc.Value.Str)

	dynamic := project.Entry("dynamic")
	require.NotNil(t, dynamic)
	require.Equal(t, tomlcst.KindArray, dynamic.Value.Kind)
	assert.False(t, dynamic.Value.Array.MultiLine)
	elems, ok := dynamic.Value.Array.StringElems()
	require.True(t, ok)
	assert.Equal(t, []string{"version"}, elems)

	assert.Equal(t, tomlcst.KindDatetime, project.Entry("when").Value.Kind)
	assert.Equal(t, tomlcst.KindFloat, project.Entry("ratio").Value.Kind)
	require.Equal(t, tomlcst.KindInteger, project.Entry("big").Value.Kind)
	assert.Equal(t, int64(1000), project.Entry("big").Value.Int)

	buildSystem := doc.Table("build-system")
	require.NotNil(t, buildSystem)
	requires := buildSystem.Entry("requires")
	require.NotNil(t, requires)
	arr := requires.Value.Array
	require.NotNil(t, arr)
	assert.True(t, arr.MultiLine)
	require.Len(t, arr.Elems, 2)
	assert.Equal(t, "# pinned elsewhere", arr.Elems[0].Comment)
	assert.Equal(t, []string{"# a lone comment"}, arr.Elems[1].LeadingTrivia)
	assert.Equal(t, `tomli; python_version < "3.11"`, arr.Elems[1].Value.Str)

	entryPoints := doc.Table("project.entry-points")
	require.NotNil(t, entryPoints)
	alpha := entryPoints.Entry("alpha")
	require.NotNil(t, alpha)
	require.Equal(t, tomlcst.KindInlineTable, alpha.Value.Kind)
	require.Len(t, alpha.Value.Inline.Entries, 2)
	assert.Equal(t, `"A.A"`, alpha.Value.Inline.Entries[1].RawKey)
	assert.Equal(t, "A.A", alpha.Value.Inline.Entries[1].Key)
}

func TestMutateValue(t *testing.T) {
	t.Parallel()
	input := "[project]\nname='demo'  # the name\nother = 1\n"
	doc, err := tomlcst.Parse([]byte(input))
	require.NoError(t, err)
	entry := doc.Table("project").Entry("name")
	require.NotNil(t, entry)
	entry.Value = tomlcst.StringValue("demo", tomlcst.EncodeBasicString("demo"), tomlcst.QuoteBasic)
	testutil.AssertEqualText(t,
		"[project]\nname=\"demo\"  # the name\nother = 1\n",
		string(doc.Serialize()))
}

func TestEncodeStrings(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `"a\"b\\c"`, tomlcst.EncodeBasicString(`a"b\c`))
	assert.Equal(t, `"tab\there"`, tomlcst.EncodeBasicString("tab\there"))
	assert.Equal(t, `'plain'`, tomlcst.EncodeLiteralString("plain"))

	str, quote, err := tomlcst.DecodeString(`"aAb"`)
	require.NoError(t, err)
	assert.Equal(t, "aAb", str)
	assert.Equal(t, tomlcst.QuoteBasic, quote)
}
