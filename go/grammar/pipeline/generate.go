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
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/sparkfmt/sparkfmt/go/tools/executil"
)

// Generator runs the external grammar compiler over the staged grammar
// files. It is an interface so tests can substitute a fake that writes
// artifacts directly.
type Generator interface {
	Generate(ctx context.Context) error
}

// AntlrGenerator invokes the ANTLR tool jar with the JavaScript target.
// The call is synchronous and unbounded: a hung compiler hangs the
// build, which is acceptable for a batch tool (cancelling the context
// terminates the subprocess gracefully).
type AntlrGenerator struct {
	fs     afero.Fs
	cfg    Config
	logger *slog.Logger
}

func NewAntlrGenerator(fs afero.Fs, cfg Config, logger *slog.Logger) *AntlrGenerator {
	return &AntlrGenerator{fs: fs, cfg: cfg, logger: logger}
}

// Generate runs the compiler. Exit code 0 with stderr text means
// non-fatal diagnostics (grammar ambiguity warnings); those are logged
// and the stage succeeds. A non-zero exit surfaces the tool's output
// verbatim.
func (g *AntlrGenerator) Generate(ctx context.Context) error {
	stagedLexer := filepath.Join(g.cfg.StagingDir, LexerGrammar)
	stagedParser := filepath.Join(g.cfg.StagingDir, ParserGrammar)
	for _, path := range []string{g.cfg.AntlrJar, stagedLexer, stagedParser} {
		exists, err := afero.Exists(g.fs, path)
		if err != nil {
			return err
		}
		if !exists {
			return &MissingInputError{Path: path}
		}
	}

	if err := g.fs.MkdirAll(g.cfg.GeneratedDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := executil.Command(ctx, g.cfg.JavaPath,
		"-jar", g.cfg.AntlrJar,
		"-Dlanguage=JavaScript",
		"-visitor",
		"-o", g.cfg.GeneratedDir,
		stagedLexer,
		stagedParser,
	).SetStdout(&stdout).SetStderr(&stderr)

	g.logger.Info("running grammar compiler", "jar", g.cfg.AntlrJar, "output_dir", g.cfg.GeneratedDir)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExternalToolError{
				Tool:     "antlr",
				ExitCode: exitErr.ExitCode(),
				Output:   stderr.String(),
			}
		}
		return fmt.Errorf("failed to run grammar compiler: %w", err)
	}

	if stdout.Len() > 0 {
		g.logger.Debug("grammar compiler output", "output", stdout.String())
	}
	if stderr.Len() > 0 {
		g.logger.Warn("grammar compiler diagnostics", "output", stderr.String())
	}
	return nil
}
