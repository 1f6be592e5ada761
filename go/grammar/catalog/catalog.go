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

// Package catalog holds the fixed table of semantic predicates, actions,
// and configuration flags the Spark SQL grammar may reference.
//
// The catalog is loaded once at process start from an embedded YAML
// document and never mutated afterwards. Components that need it receive
// the *Catalog explicitly; there is no package-level singleton.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Kind classifies how a predicate entry appears in grammar source.
type Kind string

const (
	// KindMethod is a zero-argument boolean lookahead check used as a
	// predicate: {name()}? or {!name()}?.
	KindMethod Kind = "method"
	// KindAction is a zero-argument side-effecting statement: {name();}.
	KindAction Kind = "action"
	// KindSpecial is one of the fixed dollar-tag stack idioms whose host
	// spelling is a full Java expression, not a bare call.
	KindSpecial Kind = "special"
)

// PredicateEntry describes one predicate or action. HostName is the
// spelling in the grammar's embedded Java; TargetName is the JavaScript
// method the rewritten call resolves to.
type PredicateEntry struct {
	HostName   string `yaml:"host"`
	TargetName string `yaml:"target"`
	Kind       Kind   `yaml:"kind"`
}

// ConfigFlagEntry describes a parser-behavior toggle that must exist as
// mutable state on the generated parser, settable before a parse begins.
type ConfigFlagEntry struct {
	Name    string `yaml:"name"`
	Default bool   `yaml:"default"`
}

// StateEntry describes one piece of mutable per-instance lexer state.
// Init is the JavaScript initializer expression.
type StateEntry struct {
	Name string `yaml:"name"`
	Init string `yaml:"init"`
}

// Catalog is the full predicate/flag table for both grammar roles.
type Catalog struct {
	LexerPredicates  []PredicateEntry
	LexerState       []StateEntry
	ParserPredicates []PredicateEntry
	ParserFlags      []ConfigFlagEntry
}

type catalogDoc struct {
	Lexer struct {
		Predicates []PredicateEntry `yaml:"predicates"`
		State      []StateEntry     `yaml:"state"`
	} `yaml:"lexer"`
	Parser struct {
		Predicates []PredicateEntry  `yaml:"predicates"`
		Flags      []ConfigFlagEntry `yaml:"flags"`
	} `yaml:"parser"`
}

// Load parses the embedded catalog document.
func Load() (*Catalog, error) {
	return parse(catalogYAML)
}

func parse(data []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		LexerPredicates:  doc.Lexer.Predicates,
		LexerState:       doc.Lexer.State,
		ParserPredicates: doc.Parser.Predicates,
		ParserFlags:      doc.Parser.Flags,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	seen := map[string]bool{}
	check := func(role, name string) error {
		key := role + "/" + name
		if seen[key] {
			return fmt.Errorf("duplicate catalog entry %q for role %s", name, role)
		}
		seen[key] = true
		return nil
	}

	for _, p := range c.LexerPredicates {
		if p.HostName == "" || p.TargetName == "" {
			return fmt.Errorf("lexer predicate with empty name: %+v", p)
		}
		if p.Kind != KindMethod && p.Kind != KindAction && p.Kind != KindSpecial {
			return fmt.Errorf("lexer predicate %q has unknown kind %q", p.HostName, p.Kind)
		}
		if err := check("lexer", p.TargetName); err != nil {
			return err
		}
	}
	for _, s := range c.LexerState {
		if s.Name == "" || s.Init == "" {
			return fmt.Errorf("lexer state with empty name or initializer: %+v", s)
		}
		if err := check("lexer", s.Name); err != nil {
			return err
		}
	}
	for _, p := range c.ParserPredicates {
		if p.HostName == "" || p.TargetName == "" {
			return fmt.Errorf("parser predicate with empty name: %+v", p)
		}
		if err := check("parser", p.TargetName); err != nil {
			return err
		}
	}
	for _, f := range c.ParserFlags {
		if f.Name == "" {
			return fmt.Errorf("parser flag with empty name")
		}
		if err := check("parser", f.Name); err != nil {
			return err
		}
	}
	return nil
}

// RequiredLexerNames returns every name that must be defined on the
// generated lexer: predicate/action/special targets plus state fields.
func (c *Catalog) RequiredLexerNames() []string {
	names := make([]string, 0, len(c.LexerPredicates)+len(c.LexerState))
	for _, p := range c.LexerPredicates {
		names = append(names, p.TargetName)
	}
	for _, s := range c.LexerState {
		names = append(names, s.Name)
	}
	return names
}

// RequiredParserMethods returns the method names that must be defined
// on the generated parser.
func (c *Catalog) RequiredParserMethods() []string {
	names := make([]string, 0, len(c.ParserPredicates))
	for _, p := range c.ParserPredicates {
		names = append(names, p.TargetName)
	}
	return names
}

// RequiredFlagNames returns the configuration flag names that must be
// defined on the generated parser.
func (c *Catalog) RequiredFlagNames() []string {
	names := make([]string, 0, len(c.ParserFlags))
	for _, f := range c.ParserFlags {
		names = append(names, f.Name)
	}
	return names
}
