// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/datawire/pyproject-fmt/pkg/cliutil"
	"github.com/datawire/pyproject-fmt/pkg/formatter"
)

func init() {
	var flags settingsFlags
	var flagStdout bool
	cmd := &cobra.Command{
		Use:   "fmt [flags] FILE...",
		Short: "Rewrite pyproject.toml files in the house style",
		Long: "Rewrite each FILE in place (use `-` to format stdin to stdout).  A " +
			"[tool.pyproject-fmt] section inside a file overrides the flag settings " +
			"for that file.",
		Args: cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			base, err := flags.settings(cmd)
			if err != nil {
				return err
			}
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
				if flagStdout || filename == "-" {
					if _, err := cmd.OutOrStdout().Write(output); err != nil {
						return err
					}
					continue
				}
				if bytes.Equal(input, output) {
					dlog.Debugf(ctx, "%s: already formatted", filename)
					continue
				}
				if err := os.WriteFile(filename, output, 0o644); err != nil {
					return err
				}
				dlog.Infof(ctx, "%s: reformatted", filename)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flagStdout, "stdout", false,
		"Write the formatted document to stdout instead of rewriting the file")
	argparser.AddCommand(cmd)
}
