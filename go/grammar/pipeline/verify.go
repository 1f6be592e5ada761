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
	"regexp"
	"sort"

	"github.com/spf13/afero"

	"github.com/sparkfmt/sparkfmt/go/grammar/catalog"
)

// CoverageReport lists catalog names with no definition in the injected
// artifacts. Empty slices signal full coverage.
type CoverageReport struct {
	MissingLexer  []string
	MissingParser []string
	MissingFlags  []string
}

// Clean reports whether every required name was found.
func (r CoverageReport) Clean() bool {
	return len(r.MissingLexer) == 0 && len(r.MissingParser) == 0 && len(r.MissingFlags) == 0
}

var (
	lexerDefPattern  = regexp.MustCompile(`SqlBaseLexer\.prototype\.(\w+)\s*=`)
	parserDefPattern = regexp.MustCompile(`SqlBaseParser\.prototype\.(\w+)\s*=`)
)

// VerifyStage re-reads the injected artifacts and proves every catalog
// entry has a concrete definition. Missing names are data in the
// report, not errors; the driver decides the run's fate.
type VerifyStage struct {
	fs     afero.Fs
	cat    *catalog.Catalog
	cfg    Config
	logger *slog.Logger
}

func NewVerifyStage(fs afero.Fs, cat *catalog.Catalog, cfg Config, logger *slog.Logger) *VerifyStage {
	return &VerifyStage{fs: fs, cat: cat, cfg: cfg, logger: logger}
}

// Run computes the coverage report for both artifacts.
func (s *VerifyStage) Run() (CoverageReport, error) {
	lexerDefined, err := s.definedNames(LexerArtifact, lexerDefPattern)
	if err != nil {
		return CoverageReport{}, err
	}
	parserDefined, err := s.definedNames(ParserArtifact, parserDefPattern)
	if err != nil {
		return CoverageReport{}, err
	}

	report := CoverageReport{
		MissingLexer:  missingFrom(s.cat.RequiredLexerNames(), lexerDefined),
		MissingParser: missingFrom(s.cat.RequiredParserMethods(), parserDefined),
		MissingFlags:  missingFrom(s.cat.RequiredFlagNames(), parserDefined),
	}

	s.logger.Info("coverage verified",
		"lexer_defined", len(lexerDefined),
		"parser_defined", len(parserDefined),
		"missing_lexer", len(report.MissingLexer),
		"missing_parser", len(report.MissingParser),
		"missing_flags", len(report.MissingFlags),
	)
	return report, nil
}

func (s *VerifyStage) definedNames(artifact string, pattern *regexp.Regexp) (map[string]bool, error) {
	path := filepath.Join(s.cfg.GeneratedDir, artifact)
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &MissingInputError{Path: path}
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	defined := make(map[string]bool)
	for _, m := range pattern.FindAllStringSubmatch(string(data), -1) {
		defined[m[1]] = true
	}
	return defined, nil
}

// missingFrom returns required names absent from defined, sorted for
// deterministic reports.
func missingFrom(required []string, defined map[string]bool) []string {
	var missing []string
	for _, name := range required {
		if !defined[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
