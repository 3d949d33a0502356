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

// Package journal records the ordered, human readable outcome of a mirror run.
//
// A Journal only ever grows: entries keep their append order and are never
// filtered or rewritten. At the end of a run the whole sequence is
// written out as plain text, one entry per line.
package journal

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// 📊 Severity classifies an entry
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

// String returns the label used in the log file
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// 📝 Entry is a single recorded outcome
type Entry struct {
	Message  string
	Severity Severity
}

// Line renders the entry the way it appears in the log file.
func (e Entry) Line() string {
	return fmt.Sprintf("%-5s %s", e.Severity, e.Message)
}

// 📒 Journal is the append-only sink of a single run. It is not safe for
// concurrent use.
type Journal struct {
	entries []Entry
	console io.Writer
	zlog    zerolog.Logger
}

// Option configures a Journal
type Option func(*Journal)

// WithConsole echoes every entry to w as it is appended.
func WithConsole(w io.Writer) Option {
	return func(j *Journal) {
		j.console = w
	}
}

// WithLogger mirrors every entry into a zerolog logger at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(j *Journal) {
		j.zlog = l
	}
}

// 🏭 New creates an empty journal
func New(opts ...Option) *Journal {
	j := &Journal{zlog: zerolog.Nop()}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Append records an entry.
func (j *Journal) Append(sev Severity, msg string) {
	e := Entry{Message: msg, Severity: sev}
	j.entries = append(j.entries, e)

	if j.console != nil {
		fmt.Fprintln(j.console, FormatConsole(e))
	}

	evt := j.zlog.Debug()
	if sev == SeverityError {
		evt = j.zlog.Warn()
	}
	evt.Int("seq", len(j.entries)).Msg(msg)
}

// Infof appends a formatted info entry.
func (j *Journal) Infof(format string, args ...any) {
	j.Append(SeverityInfo, fmt.Sprintf(format, args...))
}

// Errorf appends a formatted error entry.
func (j *Journal) Errorf(format string, args ...any) {
	j.Append(SeverityError, fmt.Sprintf(format, args...))
}

// Entries returns a copy of the recorded entries in append order.
func (j *Journal) Entries() []Entry {
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

func (j *Journal) Len() int {
	return len(j.entries)
}

// ErrorCount returns how many entries have SeverityError.
func (j *Journal) ErrorCount() int {
	n := 0
	for _, e := range j.entries {
		if e.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WriteTo writes one line per entry in append order.
func (j *Journal) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range j.entries {
		n, err := fmt.Fprintln(w, e.Line())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Bytes returns the log file contents.
func (j *Journal) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = j.WriteTo(&buf)
	return buf.Bytes()
}
