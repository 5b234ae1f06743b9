// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/datawire/pyproject-fmt/pkg/cliutil"
	"github.com/datawire/pyproject-fmt/pkg/formatter"
)

func init() {
	var flags settingsFlags
	cmd := &cobra.Command{
		Use:   "check [flags] FILE...",
		Short: "Report files that `fmt` would rewrite, without touching them",
		Long: "Print a unified diff for every FILE whose content differs from its " +
			"formatted form, and fail if there is any.",
		Args: cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			base, err := flags.settings(cmd)
			if err != nil {
				return err
			}
			dirty := 0
			for _, filename := range args {
				input, err := readInput(filename)
				if err != nil {
					return err
				}
				set, err := formatter.DiscoverSettings(input, base)
				if err != nil {
					return err
				}
				output, report, err := formatter.Format(input, set)
				if err != nil {
					return err
				}
				for _, warning := range report.Warnings {
					dlog.Warnf(ctx, "%s: %s", filename, warning)
				}
				if bytes.Equal(input, output) {
					continue
				}
				dirty++
				diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{ //nolint:exhaustivestruct
					A:        difflib.SplitLines(string(input)),
					B:        difflib.SplitLines(string(output)),
					FromFile: filename,
					ToFile:   filename + " (formatted)",
					Context:  3,
				})
				fmt.Fprint(cmd.OutOrStdout(), diff)
			}
			if dirty > 0 {
				return fmt.Errorf("%d file(s) would be reformatted", dirty)
			}
			return nil
		},
	}
	flags.register(cmd)
	argparser.AddCommand(cmd)
}
