// Copyright 2026 stencilgen Authors
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

package translate

import (
	"fmt"
	"strings"
)

// Emitter accumulates indented lines of C text.
type Emitter struct {
	lines  []string
	indent int
}

// Writef appends one line at the current indentation.
func (e *Emitter) Writef(format string, args ...any) {
	e.lines = append(e.lines, strings.Repeat("\t", e.indent)+fmt.Sprintf(format, args...))
}

// Block runs fn one indentation level deeper. The previous level is
// restored even when fn fails.
func (e *Emitter) Block(fn func() error) error {
	e.indent++
	defer func() { e.indent-- }()
	return fn()
}

// Indent returns the current indentation depth.
func (e *Emitter) Indent() int {
	return e.indent
}

// Lines returns the emitted lines.
func (e *Emitter) Lines() []string {
	return e.lines
}

// Reset discards all output. Slices returned by Lines before the call are
// left untouched.
func (e *Emitter) Reset() {
	e.lines = nil
	e.indent = 0
}

// String joins the lines with newlines, without a trailing newline.
func (e *Emitter) String() string {
	return strings.Join(e.lines, "\n")
}
