// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep508_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pyproject-fmt/pkg/python/pep508"
	"github.com/datawire/pyproject-fmt/pkg/testutil"
)

func TestRequirementCanonical(t *testing.T) {
	t.Parallel()
	// input spelling -> canonical spelling
	testcases := map[string]string{
		"appdirs":  "appdirs",
		"Appdirs ": "Appdirs",
		"requests >= 2.0, <3":                        "requests>=2.0,<3",
		"pip (>=1.0)":                                "pip>=1.0",
		`packaging>=20.0;python_version>"3.4"`:       `packaging>=20.0; python_version > "3.4"`,
		`packaging>=20.0;python_version>'3.4'`:       `packaging>=20.0; python_version > "3.4"`,
		"name[quux, strange];python_version<'2.7'":   `name[quux,strange]; python_version < "2.7"`,
		"pip @ file:///localbuilds/pip-1.3.1.zip":    "pip@ file:///localbuilds/pip-1.3.1.zip",
		"dep ==2.*":                                  "dep==2.*",
		"x; 'linux' not in sys_platform":             `x; "linux" not in sys_platform`,
		"y; os_name == 'nt' or os_name == 'posix'":   `y; os_name == "nt" or os_name == "posix"`,
		"z; (a == 'b' or c == 'd') and e == 'f'":     `z; (a == "b" or c == "d") and e == "f"`,
		`m; q != 'say "hi"'`:                         `m; q != 'say "hi"'`,
		"foobar@ git+https://x/i.php?p=a'b ; c=='d'": `foobar@ git+https://x/i.php?p=a'b ; c == "d"`,
	}
	for input, expected := range testcases {
		input := input
		expected := expected
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			req, err := pep508.ParseRequirement(input)
			require.NoError(t, err)
			assert.Equal(t, expected, req.String(), "parsed: %s", testutil.Dump(req))
		})
	}
}

func TestRequirementTrimReleaseZeros(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		"A==1.0.0":    "A==1",
		"A==20.0":     "A==20",
		"A==1.2.0":    "A==1.2",
		"A~=2.0":      "A~=2.0",
		"A~=2.0.0":    "A~=2.0",
		"A==2.0.*":    "A==2.0.*",
		"A==1.0.dev0": "A==1.0.dev0",
		"A==1.0phony": "",
		"A==1.0+l.0":  "A==1.0+l.0",
		"A>=1.0,<2.0": "A>=1,<2",
	}
	for input, expected := range testcases {
		input := input
		expected := expected
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			req, err := pep508.ParseRequirement(input)
			if expected == "" {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			req.TrimReleaseZeros()
			assert.Equal(t, expected, req.String())
		})
	}
}

func TestParseRequirementInvalid(t *testing.T) {
	t.Parallel()
	for _, input := range []string{
		"",
		"[extra]",
		"foo >=bogus",
		"foo; python_version >",
		"foo; python_version 3.4",
		"foo @ ",
		"foo[unterminated",
	} {
		input := input
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			_, err := pep508.ParseRequirement(input)
			assert.Error(t, err)
		})
	}
}
