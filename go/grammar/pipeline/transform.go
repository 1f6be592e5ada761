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

	"github.com/sparkfmt/sparkfmt/go/grammar/transform"
	"github.com/sparkfmt/sparkfmt/go/tools/fileutil"
)

// regionTags are the host-runtime declaration regions removed from
// every grammar. Their contents are re-supplied by the inject stage.
var regionTags = []string{"header", "members"}

// TransformStage strips the Java declaration regions from both grammar
// files, rewrites the embedded predicate calls for the JavaScript
// runtime, and persists the transformed copies to the staging
// directory.
type TransformStage struct {
	fs     afero.Fs
	cfg    Config
	logger *slog.Logger
}

func NewTransformStage(fs afero.Fs, cfg Config, logger *slog.Logger) *TransformStage {
	return &TransformStage{fs: fs, cfg: cfg, logger: logger}
}

// Run transforms both grammars. A missing source file or malformed
// brace structure fails the stage.
func (s *TransformStage) Run() error {
	if err := s.fs.MkdirAll(s.cfg.StagingDir, 0o755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	for _, name := range []string{LexerGrammar, ParserGrammar} {
		src := filepath.Join(s.cfg.GrammarDir, name)
		exists, err := afero.Exists(s.fs, src)
		if err != nil {
			return err
		}
		if !exists {
			return &MissingInputError{Path: src}
		}

		data, err := afero.ReadFile(s.fs, src)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", src, err)
		}

		doc, err := transformDocument(GrammarDocument{Name: name, Text: string(data)})
		if err != nil {
			return fmt.Errorf("failed to transform %s: %w", name, err)
		}

		staged := filepath.Join(s.cfg.StagingDir, name)
		if err := fileutil.AtomicWriteFile(s.fs, staged, []byte(doc.Text), 0o644); err != nil {
			return fmt.Errorf("failed to stage %s: %w", name, err)
		}

		s.logger.Info("transformed grammar",
			"grammar", name,
			"lines_before", countLines(string(data)),
			"lines_after", countLines(doc.Text),
		)
	}
	return nil
}

// transformDocument applies the full pass sequence to one grammar,
// returning a new document.
func transformDocument(doc GrammarDocument) (GrammarDocument, error) {
	text := doc.Text
	for _, tag := range regionTags {
		stripped, err := transform.StripBlock(text, tag)
		if err != nil {
			return GrammarDocument{}, err
		}
		text = stripped
	}
	rewritten, err := transform.RewriteCalls(text)
	if err != nil {
		return GrammarDocument{}, err
	}
	return GrammarDocument{Name: doc.Name, Text: rewritten}, nil
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
