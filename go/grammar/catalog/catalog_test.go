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

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	// Three lookahead methods, three actions, three dollar-tag idioms.
	assert.Len(t, cat.LexerPredicates, 9)
	assert.Len(t, cat.LexerState, 3)
	assert.Len(t, cat.ParserPredicates, 1)
	assert.Len(t, cat.ParserFlags, 7)
}

func TestRequiredNames(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	lexer := cat.RequiredLexerNames()
	assert.Len(t, lexer, 12)
	assert.Contains(t, lexer, "isValidDecimal")
	assert.Contains(t, lexer, "pushDollarTag")
	assert.Contains(t, lexer, "dollar_tags")

	assert.Equal(t, []string{"isOperatorPipeStart"}, cat.RequiredParserMethods())

	flags := cat.RequiredFlagNames()
	assert.Len(t, flags, 7)
	assert.Contains(t, flags, "SQL_standard_keyword_behavior")
}

func TestFlagDefaults(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	defaults := map[string]bool{}
	for _, f := range cat.ParserFlags {
		defaults[f.Name] = f.Default
	}

	assert.False(t, defaults["legacy_setops_precedence_enabled"])
	assert.True(t, defaults["parameter_substitution_enabled"])
	assert.True(t, defaults["single_character_pipe_operator_enabled"])
}

func TestSpecialFormTargets(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	targets := map[string]string{}
	for _, p := range cat.LexerPredicates {
		if p.Kind == KindSpecial {
			targets[p.HostName] = p.TargetName
		}
	}

	assert.Equal(t, map[string]string{
		"tags.push(getText())":          "pushDollarTag",
		"getText().equals(tags.peek())": "matchesDollarTag",
		"tags.pop()":                    "popDollarTag",
	}, targets)
}

func TestParseRejectsDuplicates(t *testing.T) {
	doc := []byte(`
lexer:
  predicates:
    - host: isHint
      target: isHint
      kind: method
    - host: isHintAgain
      target: isHint
      kind: method
`)
	_, err := parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate catalog entry")
}

func TestParseRejectsUnknownKind(t *testing.T) {
	doc := []byte(`
lexer:
  predicates:
    - host: isHint
      target: isHint
      kind: lookahead
`)
	_, err := parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}
