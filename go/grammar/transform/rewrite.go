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

package transform

import "strings"

// RewriteCalls converts embedded predicate and action fragments from
// the grammar's Java spelling to the JavaScript this.-call convention.
//
// Four shapes are rewritten; everything else, including fragments that
// match none of them, is copied verbatim:
//
//  1. The fixed dollar-tag stack idioms (push/peek-compare/pop),
//     matched before the generic rules because they share surface
//     syntax with plain call expressions.
//  2. {name()}? and {!name()}?   -> {this.name()}? / {!this.name()}?
//  3. {name();}                  -> {this.name();}
//  4. {name}? and {!name}?       -> {this.name}? / {!this.name}?
//
// The trailing ? is the only disambiguator between predicate and action
// shapes and is preserved exactly. The rewriter performs no catalog
// lookups: any zero-argument call or field read in these positions is
// rewritten, and the coverage verifier later proves the names resolve.
func RewriteCalls(text string) (string, error) {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		switch c := text[i]; {
		case c == '\'':
			j, closed := skipQuoted(text, i, '\'')
			if !closed {
				return "", &MalformedStructureError{Context: "string literal", Offset: i}
			}
			b.WriteString(text[i:j])
			i = j
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			j := skipLineComment(text, i)
			b.WriteString(text[i:j])
			i = j
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			j := skipBlockComment(text, i)
			b.WriteString(text[i:j])
			i = j
		case c == '{':
			end, closed := scanBraced(text, i)
			if !closed {
				return "", &MalformedStructureError{Context: "code fragment", Offset: i}
			}
			frag := text[i+1 : end-1]
			isPredicate := end < len(text) && text[end] == '?'
			if out, ok := rewriteFragment(frag, isPredicate); ok {
				b.WriteString(out)
			} else {
				b.WriteString(text[i:end])
			}
			i = end
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// rewriteFragment rewrites the body of one braced fragment, returning
// the full replacement including braces (the caller keeps any trailing
// ? from the source). Returns false if the fragment matches no shape.
func rewriteFragment(frag string, isPredicate bool) (string, bool) {
	compact := stripSpace(frag)

	// Special forms first: precedence over the generic call rules.
	switch compact {
	case "tags.push(getText());", "tags.push(getText())":
		return "{this.pushDollarTag();}", true
	case "getText().equals(tags.peek())":
		return "{this.matchesDollarTag()}", true
	case "tags.pop();", "tags.pop()":
		return "{this.popDollarTag();}", true
	}

	negation := ""
	body := compact
	if strings.HasPrefix(body, "!") {
		negation = "!"
		body = body[1:]
	}

	switch {
	case isPredicate && strings.HasSuffix(body, "()") && isIdent(strings.TrimSuffix(body, "()")):
		return "{" + negation + "this." + strings.TrimSuffix(body, "()") + "()}", true
	case !isPredicate && negation == "" && strings.HasSuffix(body, "();") && isIdent(strings.TrimSuffix(body, "();")):
		return "{this." + strings.TrimSuffix(body, "();") + "();}", true
	case isPredicate && isIdent(body):
		return "{" + negation + "this." + body + "}", true
	}
	return "", false
}

func stripSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
