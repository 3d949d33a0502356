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

package journal

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const consoleIndent = 2

// Color returns the console colour of a severity: green for info, red for errors.
func (s Severity) Color() *color.Color {
	if s == SeverityError {
		return color.New(color.FgRed)
	}
	return color.New(color.FgGreen)
}

// 🎯 FormatConsole formats an entry for terminal output
func FormatConsole(e Entry) string {
	symbol := '✓'
	if e.Severity == SeverityError {
		symbol = '✗'
	}

	c := e.Severity.Color()
	return fmt.Sprintf("%s%s %s",
		strings.Repeat(" ", consoleIndent),
		c.Sprint(string(symbol)),
		c.Sprint(e.Message))
}
