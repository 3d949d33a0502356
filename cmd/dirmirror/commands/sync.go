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

package commands

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/dirmirror/cmd/dirmirror/opts"
	"github.com/walteh/dirmirror/pkg/config"
	"github.com/walteh/dirmirror/pkg/mirror"
	"gitlab.com/tozd/go/errors"
)

type syncFlags struct {
	logFile            string
	exclude            []string
	recursiveFilePrune bool
	quiet              bool
}

// NewSyncCmd creates a new sync command
func NewSyncCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &syncFlags{}

	cmd := &cobra.Command{
		Use:   "sync [SOURCE DEST]",
		Short: "Make a destination directory mirror a source directory",
		Long: `Sync copies every file and directory from SOURCE into DEST, overwriting
existing files, then deletes what DEST has that SOURCE does not.
It will:
1. Copy top level files
2. Recreate and fill every subdirectory
3. Delete top level files missing from the source
4. Delete directories missing from the source, recursively

Files nested inside shared subdirectories are only pruned with
--recursive-file-prune. Every operation is written to the log file.

SOURCE and DEST override the paths of the --config job.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.Errorf("expected SOURCE and DEST, got %d argument(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "sync").Logger().WithContext(cmd.Context())

			cfg, err := resolveJob(ctx, opts, cmd, flags, args)
			if err != nil {
				return err
			}

			mopts := mirror.Options{
				Exclude:            cfg.Exclude,
				RecursiveFilePrune: cfg.RecursiveFilePrune,
			}
			if !flags.quiet {
				mopts.Console = opts.Stdout
			}

			m, err := mirror.New(opts.FS, mopts)
			if err != nil {
				return errors.Errorf("creating mirror: %w", err)
			}

			opts.UserLogger.LogJob(cfg.String())

			j, err := m.Run(ctx, cfg.Source, cfg.Destination, cfg.LogFile)
			opts.UserLogger.LogSummary(j, cfg.LogFile, err)
			if err != nil {
				return errors.Errorf("synchronizing: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.logFile, "log", "l", "", "log file path (default \""+config.DefaultLogFile+"\")")
	cmd.Flags().StringArrayVarP(&flags.exclude, "exclude", "e", nil, "doublestar pattern to leave alone, repeatable")
	cmd.Flags().BoolVar(&flags.recursiveFilePrune, "recursive-file-prune", false, "also delete orphan files inside shared subdirectories")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "do not echo operations to stdout")

	return cmd
}

// resolveJob merges the --config job, positional arguments and flags, then
// validates the result.
func resolveJob(ctx context.Context, opts *opts.RootOpts, cmd *cobra.Command, flags *syncFlags, args []string) (*config.Config, error) {
	cfg := &config.Config{}

	if opts.ConfigFile != "" {
		loaded, err := config.Load(ctx, opts.FS, opts.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else if len(args) == 0 {
		return nil, errors.Errorf("either SOURCE and DEST or --config is required")
	}

	// command line paths are relative to the working directory, not the job file
	var err error
	if len(args) == 2 {
		if cfg.Source, err = filepath.Abs(args[0]); err != nil {
			return nil, errors.Errorf("resolving source: %w", err)
		}
		if cfg.Destination, err = filepath.Abs(args[1]); err != nil {
			return nil, errors.Errorf("resolving destination: %w", err)
		}
	}
	if cmd.Flags().Changed("log") {
		if cfg.LogFile, err = filepath.Abs(flags.logFile); err != nil {
			return nil, errors.Errorf("resolving log file: %w", err)
		}
	}
	cfg.Exclude = append(cfg.Exclude, flags.exclude...)
	if cmd.Flags().Changed("recursive-file-prune") {
		cfg.RecursiveFilePrune = flags.recursiveFilePrune
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating job: %w", err)
	}

	return cfg, nil
}
