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

// Role distinguishes the lexer and parser grammars and their generated
// artifacts, which carry different catalog requirements.
type Role string

const (
	RoleLexer  Role = "lexer"
	RoleParser Role = "parser"
)

// GrammarDocument is one grammar file in memory. Passes produce new
// documents rather than mutating in place, so re-running the pipeline
// from a clean staging directory reproduces identical output.
type GrammarDocument struct {
	Name string
	Text string
}

// GeneratedArtifact is one compiler-emitted source file in memory.
type GeneratedArtifact struct {
	Role Role
	Name string
	Text string
}
