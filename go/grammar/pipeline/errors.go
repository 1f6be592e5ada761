// Copyright 2025 Supabase, Inc.
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

package pipeline

import (
	"fmt"
	"strings"
)

// MissingInputError reports that a required file (source grammar,
// staged grammar, generated artifact, or the compiler jar) does not
// exist at its expected path. Always fatal to the run.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("required input %s does not exist", e.Path)
}

// ExternalToolError reports a non-zero exit from the grammar compiler.
// Output carries the tool's diagnostic text verbatim.
type ExternalToolError struct {
	Tool     string
	ExitCode int
	Output   string
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// CoverageGapError reports catalog entries with no injected
// implementation. The verifier never raises it; the driver does, so a
// build with gaps cannot be mistaken for usable output.
type CoverageGapError struct {
	Report CoverageReport
}

func (e *CoverageGapError) Error() string {
	var parts []string
	if len(e.Report.MissingLexer) > 0 {
		parts = append(parts, "lexer: "+strings.Join(e.Report.MissingLexer, ", "))
	}
	if len(e.Report.MissingParser) > 0 {
		parts = append(parts, "parser: "+strings.Join(e.Report.MissingParser, ", "))
	}
	if len(e.Report.MissingFlags) > 0 {
		parts = append(parts, "flags: "+strings.Join(e.Report.MissingFlags, ", "))
	}
	return "coverage gaps (" + strings.Join(parts, "; ") + ")"
}
