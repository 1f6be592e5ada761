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
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sparkfmt/sparkfmt/go/grammar/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{
		GrammarDir:   "/src/grammar",
		StagingDir:   "/build/grammar",
		GeneratedDir: "/build/generated",
		AntlrJar:     "/tools/antlr4.jar",
		JavaPath:     "java",
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

// writeSourceGrammars seeds the in-memory filesystem with grammar files.
func writeSourceGrammars(t *testing.T, fs afero.Fs, cfg Config, lexer, parser string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(cfg.GrammarDir, 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(cfg.GrammarDir, LexerGrammar), []byte(lexer), 0o644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(cfg.GrammarDir, ParserGrammar), []byte(parser), 0o644))
}

func readStaged(t *testing.T, fs afero.Fs, cfg Config, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, filepath.Join(cfg.StagingDir, name))
	require.NoError(t, err)
	return string(data)
}

func readGenerated(t *testing.T, fs afero.Fs, cfg Config, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, filepath.Join(cfg.GeneratedDir, name))
	require.NoError(t, err)
	return string(data)
}

// fakeGenerator stands in for the ANTLR jar: it checks the staged
// grammars exist and writes bare generated artifacts that only contain
// calls, never definitions, the way the real generator does.
type fakeGenerator struct {
	fs   afero.Fs
	cfg  Config
	fail error
	runs int
}

func (g *fakeGenerator) Generate(ctx context.Context) error {
	if g.fail != nil {
		return g.fail
	}
	for _, name := range []string{LexerGrammar, ParserGrammar} {
		staged := filepath.Join(g.cfg.StagingDir, name)
		exists, err := afero.Exists(g.fs, staged)
		if err != nil {
			return err
		}
		if !exists {
			return &MissingInputError{Path: staged}
		}
	}
	if err := g.fs.MkdirAll(g.cfg.GeneratedDir, 0o755); err != nil {
		return err
	}

	lexer := "// Generated from SqlBaseLexer.g4\n" +
		"const SqlBaseLexer = class extends antlr4.Lexer {};\n" +
		"// sempred dispatch calls this.isValidDecimal(), this.isHint(), ...\n"
	parser := "// Generated from SqlBaseParser.g4\n" +
		"const SqlBaseParser = class extends antlr4.Parser {};\n" +
		"// sempred dispatch calls this.isOperatorPipeStart(), ...\n"

	if err := afero.WriteFile(g.fs, filepath.Join(g.cfg.GeneratedDir, LexerArtifact), []byte(lexer), 0o644); err != nil {
		return err
	}
	if err := afero.WriteFile(g.fs, filepath.Join(g.cfg.GeneratedDir, ParserArtifact), []byte(parser), 0o644); err != nil {
		return err
	}
	g.runs++
	return nil
}
