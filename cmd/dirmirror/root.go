// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/dirmirror/cmd/dirmirror/commands"
	"github.com/walteh/dirmirror/cmd/dirmirror/opts"
	"github.com/walteh/dirmirror/pkg/fsys"
	"github.com/walteh/dirmirror/pkg/report"
)

// newRootCmd builds the command tree. Output goes to stdout, diagnostics to stderr.
func newRootCmd(ctx context.Context, fs fsys.FS, stdout, stderr io.Writer) (*cobra.Command, *opts.RootOpts) {
	rootOpts := &opts.RootOpts{
		FS:         fs,
		UserLogger: report.NewUserLogger(ctx, stdout),
		Stdout:     stdout,
	}

	var debug bool

	rootCmd := &cobra.Command{
		Use:   "dirmirror",
		Short: "A tool for one-way directory mirroring",
		Long: `dirmirror makes a destination directory an exact copy of a source directory
and records every copy, deletion and failure in a log file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := setupLogging(stderr, debug)
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&rootOpts.ConfigFile, "config", "c", "", "job file path (.yaml, .yml, .json or .hcl)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(
		commands.NewSyncCmd(rootOpts),
		commands.NewVersionCmd(rootOpts),
	)

	return rootCmd, rootOpts
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
