// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/datawire/pyproject-fmt/pkg/formatter"
)

// settingsFlags is the set of flags shared by the `fmt` and `check`
// subcommands; the values act as the base configuration that a
// [tool.pyproject-fmt] section in the document being formatted may override.
type settingsFlags struct {
	columnWidth     int
	indent          int
	keepFullVersion bool
	minPython       string
	maxPython       string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.columnWidth, "column-width", 120,
		"Maximum line width the array layout aims for")
	cmd.Flags().IntVar(&f.indent, "indent", 2,
		"Number of spaces each element of an expanded array is indented by")
	cmd.Flags().BoolVar(&f.keepFullVersion, "keep-full-version", false,
		"Keep trailing `.0` segments of pinned dependency versions")
	cmd.Flags().StringVar(&f.minPython, "min-supported-python", "3.8",
		"Lowest interpreter version (`3.N`) considered for classifier synthesis")
	cmd.Flags().StringVar(&f.maxPython, "max-supported-python", "3.12",
		"Highest interpreter version (`3.N`) considered for classifier synthesis")
}

func (f *settingsFlags) settings(cmd *cobra.Command) (formatter.Settings, error) {
	minPy, err := formatter.ParsePyVersion(f.minPython)
	if err != nil {
		return formatter.Settings{}, err
	}
	maxPy, err := formatter.ParsePyVersion(f.maxPython)
	if err != nil {
		return formatter.Settings{}, err
	}
	return formatter.Settings{
		ColumnWidth:        f.columnWidth,
		Indent:             f.indent,
		IndentSet:          cmd.Flags().Changed("indent"),
		KeepFullVersion:    f.keepFullVersion,
		MinSupportedPython: minPy,
		MaxSupportedPython: maxPy,
	}, nil
}

// readInput reads a named file, with `-` meaning stdin.
func readInput(filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filename)
}
