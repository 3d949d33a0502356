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

package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/walteh/dirmirror/pkg/journal"
	"github.com/walteh/dirmirror/pkg/mirror"
	"gitlab.com/tozd/go/errors"
)

func TestLogSummary(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	logErr := &mirror.LogFileError{Path: "/tmp/m.log", Err: errors.New("permission denied")}

	tests := []struct {
		name    string
		fill    func(j *journal.Journal)
		runErr  error
		want    []string
		notWant []string
	}{
		{
			name:    "empty_trees",
			fill:    func(j *journal.Journal) {},
			want:    []string{"No entries to copy or delete", "Log written to /tmp/m.log"},
			notWant: []string{"in sync"},
		},
		{
			name: "all_succeeded",
			fill: func(j *journal.Journal) {
				j.Infof("a.txt copied to /d/a.txt")
				j.Infof("stale.txt deleted from /d/stale.txt")
			},
			want:    []string{"2 operations completed"},
			notWant: []string{"failed"},
		},
		{
			name: "some_failed",
			fill: func(j *journal.Journal) {
				j.Infof("a.txt copied to /d/a.txt")
				j.Errorf("Error copying file: locked")
			},
			want: []string{"2 operations, 1 failed"},
		},
		{
			name: "aborted",
			fill: func(j *journal.Journal) {
				j.Errorf("Error listing directory /s: missing")
			},
			runErr:  errors.New("listing source: missing"),
			want:    []string{"Run aborted after 1 operations, 1 failed", "Log written to /tmp/m.log"},
			notWant: []string{"completed"},
		},
		{
			name: "log_file_not_written",
			fill: func(j *journal.Journal) {
				j.Infof("a.txt copied to /d/a.txt")
			},
			runErr:  logErr,
			want:    []string{"1 operations completed", "Log file /tmp/m.log could not be written: permission denied"},
			notWant: []string{"Log written", "aborted"},
		},
		{
			name: "aborted_and_log_file_not_written",
			fill: func(j *journal.Journal) {
				j.Errorf("Error listing directory /s: missing")
			},
			runErr:  errors.Join(errors.New("listing source: missing"), logErr),
			want:    []string{"Run aborted", "could not be written"},
			notWant: []string{"Log written"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			u := NewUserLogger(ctx, &buf)

			j := journal.New()
			tt.fill(j)
			u.LogSummary(j, "/tmp/m.log", tt.runErr)

			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, buf.String(), w)
			}
		})
	}
}

func TestLogValidation(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var buf bytes.Buffer
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	u := NewUserLogger(ctx, &buf)

	u.LogValidation(false, "Command failed", errors.New("source is required"))
	assert.Contains(t, buf.String(), "Command failed")
	assert.Contains(t, buf.String(), "source is required")

	buf.Reset()
	u.LogJob("/a -> /b")
	assert.Contains(t, buf.String(), "Mirroring /a -> /b")
}
