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

package mirror

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/rs/zerolog"
	"github.com/walteh/dirmirror/pkg/fsys"
	"github.com/walteh/dirmirror/pkg/journal"
	"gitlab.com/tozd/go/errors"
)

// 📒 Sink receives the outcome of every operation, in order
type Sink interface {
	Append(sev journal.Severity, msg string)
}

var _ Sink = (*journal.Journal)(nil)

// 🔧 Options contains configuration for a mirror
type Options struct {
	// Exclude holds doublestar patterns matched against slash separated paths
	// relative to the walked root. Matching entries are neither copied nor pruned.
	Exclude []string
	// RecursiveFilePrune also deletes orphan files inside nested directories.
	RecursiveFilePrune bool
	// Console receives a coloured echo of every journal entry. Nil disables it.
	Console io.Writer
}

// LogFileError reports that the journal of a run could not be written.
type LogFileError struct {
	Path string
	Err  error
}

func (e *LogFileError) Error() string {
	return fmt.Sprintf("writing log file %s: %v", e.Path, e.Err)
}

func (e *LogFileError) Unwrap() error {
	return e.Err
}

// 🪞 Mirror runs one-directional synchronizations over a filesystem
type Mirror struct {
	fs      fsys.FS
	opts    Options
	exclude *matcher
}

// 🏭 New creates a mirror over fs
func New(fs fsys.FS, opts Options) (*Mirror, error) {
	if fs == nil {
		return nil, errors.Errorf("filesystem is required")
	}

	m, err := newMatcher(opts.Exclude)
	if err != nil {
		return nil, errors.Errorf("compiling exclude patterns: %w", err)
	}

	return &Mirror{
		fs:      fs,
		opts:    opts,
		exclude: m,
	}, nil
}

// 🎯 Synchronize makes destPath mirror sourcePath and writes the journal of
// the run to logFilePath. Per-entry failures only show up in the log; the
// returned error is reserved for an aborted run or an unwritable log file.
func (m *Mirror) Synchronize(ctx context.Context, sourcePath, destPath, logFilePath string) error {
	_, err := m.Run(ctx, sourcePath, destPath, logFilePath)
	return err
}

// Run is Synchronize, also returning the journal of the run. The journal is
// never nil, even when err is not.
func (m *Mirror) Run(ctx context.Context, sourcePath, destPath, logFilePath string) (*journal.Journal, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("source", sourcePath).
		Str("destination", destPath).
		Logger()

	j := journal.New(
		journal.WithConsole(m.opts.Console),
		journal.WithLogger(logger),
	)

	logger.Debug().Msg("starting synchronization")
	runErr := m.run(logger.WithContext(ctx), j, sourcePath, destPath)

	if err := m.fs.WriteFile(logFilePath, j.Bytes()); err != nil {
		var logErr error = &LogFileError{Path: logFilePath, Err: err}
		if runErr != nil {
			return j, errors.Join(runErr, logErr)
		}
		return j, logErr
	}

	logger.Debug().
		Int("entries", j.Len()).
		Int("errors", j.ErrorCount()).
		Str("log_file", logFilePath).
		Msg("synchronization finished")

	return j, runErr
}

func (m *Mirror) run(ctx context.Context, sink Sink, sourcePath, destPath string) error {
	if err := m.fs.MkdirAll(destPath); err != nil {
		sink.Append(journal.SeverityError, fmt.Sprintf("Error creating directory %s: %v", destPath, err))
		return errors.Errorf("creating destination: %w", err)
	}

	entries, err := m.list(sink, sourcePath)
	if err != nil {
		return errors.Errorf("listing source: %w", err)
	}

	files, dirs := split(entries)
	m.copyFiles(ctx, sink, sourcePath, destPath, "", files)

	root := &copyFrame{src: sourcePath, dst: destPath, dirs: dirs}
	if err := m.walkCopy(ctx, sink, root); err != nil {
		return errors.Errorf("copying tree: %w", err)
	}

	if err := m.PruneFiles(ctx, sink, destPath, sourcePath); err != nil {
		return errors.Errorf("pruning files: %w", err)
	}

	if err := m.PruneDirectories(ctx, sink, destPath, sourcePath); err != nil {
		return errors.Errorf("pruning directories: %w", err)
	}

	return nil
}

// list reads a directory, recording a failure in the sink before returning it.
func (m *Mirror) list(sink Sink, dir string) ([]fsys.Entry, error) {
	entries, err := m.fs.ReadDir(dir)
	if err != nil {
		sink.Append(journal.SeverityError, fmt.Sprintf("Error listing directory %s: %v", dir, err))
		return nil, err
	}
	return entries, nil
}

func split(entries []fsys.Entry) (files, dirs []fsys.Entry) {
	for _, e := range entries {
		if e.IsDir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	return files, dirs
}

func relJoin(rel, name string) string {
	if rel == "" {
		return name
	}
	return path.Join(rel, name)
}
