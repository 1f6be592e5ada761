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
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/sparkfmt/sparkfmt/go/grammar/catalog"
	"github.com/sparkfmt/sparkfmt/go/tools/fileutil"
)

// InjectStage appends the JavaScript implementations of every catalog
// entry to the generated artifacts. The generator only emits calls to
// these names; their bodies live here.
//
// Injection appends exactly once per run. The generate stage always
// rewrites the artifacts first, so a second append cannot occur within
// one pipeline run.
type InjectStage struct {
	fs     afero.Fs
	cat    *catalog.Catalog
	cfg    Config
	logger *slog.Logger
}

func NewInjectStage(fs afero.Fs, cat *catalog.Catalog, cfg Config, logger *slog.Logger) *InjectStage {
	return &InjectStage{fs: fs, cat: cat, cfg: cfg, logger: logger}
}

// Run injects both artifacts. A missing artifact means generation did
// not run or failed silently, and fails the stage.
func (s *InjectStage) Run() error {
	lexerBlock, err := lexerImplBlock(s.cat)
	if err != nil {
		return err
	}
	parserBlock, err := parserImplBlock(s.cat)
	if err != nil {
		return err
	}

	for _, in := range []struct {
		name  string
		block string
	}{
		{LexerArtifact, lexerBlock},
		{ParserArtifact, parserBlock},
	} {
		path := filepath.Join(s.cfg.GeneratedDir, in.name)
		exists, err := afero.Exists(s.fs, path)
		if err != nil {
			return err
		}
		if !exists {
			return &MissingInputError{Path: path}
		}

		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		text := strings.TrimRight(string(data), "\n") + "\n" + in.block
		if err := fileutil.AtomicWriteFile(s.fs, path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		s.logger.Info("injected implementations", "artifact", in.name)
	}
	return nil
}

// lexerImplBlock renders the lexer's per-instance state and predicate
// methods from the catalog.
func lexerImplBlock(cat *catalog.Catalog) (string, error) {
	var b strings.Builder
	b.WriteString("\n// Predicate implementations restored from the grammar's Java @members block.\n\n")

	b.WriteString("// Mutable per-instance lexer state.\n")
	for _, st := range cat.LexerState {
		fmt.Fprintf(&b, "SqlBaseLexer.prototype.%s = %s;\n", st.Name, st.Init)
	}
	b.WriteString("\n")

	for _, p := range cat.LexerPredicates {
		body, ok := lexerBodies[p.TargetName]
		if !ok {
			return "", fmt.Errorf("no lexer implementation for catalog entry %q", p.TargetName)
		}
		fmt.Fprintf(&b, "SqlBaseLexer.prototype.%s = function() {\n%s\n};\n\n", p.TargetName, body)
	}
	return b.String(), nil
}

// parserImplBlock renders the parser's configuration flags and
// lookahead methods from the catalog.
func parserImplBlock(cat *catalog.Catalog) (string, error) {
	var b strings.Builder
	b.WriteString("\n// Predicate implementations restored from the grammar's Java @members block.\n\n")

	b.WriteString("// Configuration flags; set before parsing to change the accepted dialect.\n")
	for _, f := range cat.ParserFlags {
		fmt.Fprintf(&b, "SqlBaseParser.prototype.%s = %t;\n", f.Name, f.Default)
	}
	b.WriteString("\n")

	for _, p := range cat.ParserPredicates {
		body, ok := parserBodies[p.TargetName]
		if !ok {
			return "", fmt.Errorf("no parser implementation for catalog entry %q", p.TargetName)
		}
		fmt.Fprintf(&b, "SqlBaseParser.prototype.%s = function() {\n%s\n};\n\n", p.TargetName, body)
	}
	return b.String(), nil
}

// lexerBodies maps catalog target names to JavaScript function bodies.
var lexerBodies = map[string]string{
	// A numeric token is only a valid decimal literal if the next input
	// codepoint would not extend it into an identifier.
	"isValidDecimal": `    const next = this._input.LA(1);
    if ((next >= 65 && next <= 90) ||   // A-Z
        (next >= 97 && next <= 122) ||  // a-z
        (next >= 48 && next <= 57) ||   // 0-9
        next === 95) {                  // _
        return false;
    }
    return true;`,

	// A bracketed comment is a query hint when it opens with '+'.
	"isHint": `    return this._input.LA(1) === 43; // '+'`,

	// Inside MAP<K, ARRAY<V>> a '>>' must lex as two closing brackets,
	// not a shift operator.
	"isShiftRightOperator": `    return this.complex_type_level_counter === 0;`,

	"incComplexTypeLevelCounter": `    this.complex_type_level_counter++;`,

	"decComplexTypeLevelCounter": `    if (this.complex_type_level_counter > 0) {
        this.complex_type_level_counter--;
    }`,

	"markUnclosedComment": `    this.has_unclosed_bracketed_comment = true;`,

	"pushDollarTag": `    this.dollar_tags.push(this.getText());`,

	"popDollarTag": `    if (this.dollar_tags.length > 0) {
        this.dollar_tags.pop();
    }`,

	"matchesDollarTag": `    if (this.dollar_tags.length === 0) {
        return false;
    }
    return this.getText() === this.dollar_tags[this.dollar_tags.length - 1];`,
}

// parserBodies maps catalog target names to JavaScript function bodies.
var parserBodies = map[string]string{
	// '|>' starts an operator pipe only when the token two positions
	// ahead is GT; a lone '|' followed by an unrelated '>' does not.
	"isOperatorPipeStart": `    return this._input.LA(2) === SqlBaseParser.GT;`,
}
