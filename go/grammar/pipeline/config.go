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

// Package pipeline drives the grammar build: transform the Spark SQL
// grammar for the JavaScript ANTLR target, run the generator, inject
// the predicate implementations, and verify coverage.
package pipeline

import "path/filepath"

// Grammar and artifact file names. The generator derives the artifact
// names from the grammar names, so these move together.
const (
	LexerGrammar   = "SqlBaseLexer.g4"
	ParserGrammar  = "SqlBaseParser.g4"
	LexerArtifact  = "SqlBaseLexer.js"
	ParserArtifact = "SqlBaseParser.js"
)

// Config holds the pipeline's filesystem layout and tool locations.
type Config struct {
	// GrammarDir holds the source .g4 files with embedded Java.
	GrammarDir string
	// StagingDir receives the transformed grammar copies.
	StagingDir string
	// GeneratedDir receives the ANTLR-emitted JavaScript sources.
	GeneratedDir string
	// AntlrJar is the path to the ANTLR tool jar.
	AntlrJar string
	// JavaPath is the java executable used to run the jar.
	JavaPath string
}

// DefaultConfig derives the fixed relative layout from the install
// root.
func DefaultConfig(root string) Config {
	return Config{
		GrammarDir:   filepath.Join(root, "grammar"),
		StagingDir:   filepath.Join(root, "build", "grammar"),
		GeneratedDir: filepath.Join(root, "build", "generated"),
		AntlrJar:     filepath.Join(root, "tools", "antlr4.jar"),
		JavaPath:     "java",
	}
}
