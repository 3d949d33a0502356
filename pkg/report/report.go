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

// Package report prints user facing progress and summaries for the CLI.
package report

import (
	"context"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/dirmirror/pkg/journal"
	"github.com/walteh/dirmirror/pkg/mirror"
	"gitlab.com/tozd/go/errors"
)

// 📢 UserLogger provides user-friendly feedback about a mirror run
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewUserLogger creates a new user logger writing to w. A nil w means stdout.
func NewUserLogger(ctx context.Context, w io.Writer) *UserLogger {
	if w == nil {
		w = os.Stdout
	}
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: w,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

// 📦 LogJob announces the job about to run
func (u *UserLogger) LogJob(description string) {
	u.printer(pterm.Info, "🪞").Println("Mirroring " + description)
	u.log.Info().Str("job", description).Msg("mirroring")
}

// 📊 LogSummary reports the outcome of a run. runErr is the error the run
// returned, if any.
func (u *UserLogger) LogSummary(j *journal.Journal, logFile string, runErr error) {
	total, failed := j.Len(), j.ErrorCount()

	var logErr *mirror.LogFileError
	logWritten := !errors.As(runErr, &logErr)
	// a run that only failed to write its log still completed every operation
	_, onlyLog := runErr.(*mirror.LogFileError)
	aborted := runErr != nil && !onlyLog

	switch {
	case aborted:
		u.printer(pterm.Error, "❌").Printfln("Run aborted after %d operations, %d failed", total, failed)
	case total == 0:
		u.printer(pterm.Success, "✅").Println("No entries to copy or delete")
	case failed == 0:
		u.printer(pterm.Success, "✅").Printfln("%d operations completed", total)
	default:
		u.printer(pterm.Warning, "⚠️").Printfln("%d operations, %d failed", total, failed)
	}

	if logWritten {
		u.printer(pterm.Info, "📝").Printfln("Log written to %s", logFile)
	} else {
		u.printer(pterm.Warning, "⚠️").Printfln("Log file %s could not be written: %v", logFile, logErr.Err)
	}

	u.log.Info().
		Int("operations", total).
		Int("failed", failed).
		Str("log_file", logFile).
		Bool("log_written", logWritten).
		AnErr("run_error", runErr).
		Msg("run finished")
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		pterm.Error.WithWriter(u.out).Println(err)
		u.log.Error().Err(err).Msg(description)
		return
	}
	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}
