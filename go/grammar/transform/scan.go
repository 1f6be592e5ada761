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

// Package transform rewrites ANTLR grammar source so a grammar authored
// for the Java runtime can be compiled for the JavaScript target.
//
// Two passes are provided: StripBlock removes host-runtime declaration
// regions (@header, @members), and RewriteCalls converts embedded
// predicate/action fragments to the JavaScript this.-call convention.
// Both passes use a small hand-written scanner that tracks brace depth
// across string literals and comments, so unbalanced input is reported
// instead of silently consuming trailing text.
package transform

import "fmt"

// MalformedStructureError reports structurally invalid grammar source,
// either a brace region or a quoted literal that never closes. The scan
// stops at the byte where the structure opened.
type MalformedStructureError struct {
	Context string // what never closed, e.g. "@members block"
	Offset  int    // byte offset where the structure opened
}

func (e *MalformedStructureError) Error() string {
	return fmt.Sprintf("unclosed %s at offset %d", e.Context, e.Offset)
}

// scanBraced returns the index just past the brace matching the '{' at
// open. Braces inside single- or double-quoted literals and inside //
// or /* */ comments do not affect the depth count. Returns false if the
// region never closes.
func scanBraced(text string, open int) (int, bool) {
	depth := 1
	i := open + 1
	for i < len(text) {
		switch text[i] {
		case '\'':
			i, _ = skipQuoted(text, i, '\'')
		case '"':
			i, _ = skipQuoted(text, i, '"')
		case '/':
			if i+1 < len(text) && text[i+1] == '/' {
				i = skipLineComment(text, i)
			} else if i+1 < len(text) && text[i+1] == '*' {
				i = skipBlockComment(text, i)
			} else {
				i++
			}
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
			if depth == 0 {
				return i, true
			}
		default:
			i++
		}
	}
	return i, false
}

// skipQuoted advances past a quoted literal starting at i (text[i] is
// the quote character). Backslash escapes are honored, including a
// trailing backslash as the last byte of input. An unterminated literal
// consumes to end of text and reports closed=false.
func skipQuoted(text string, i int, quote byte) (_ int, closed bool) {
	i++
	for i < len(text) {
		switch text[i] {
		case '\\':
			if i+1 >= len(text) {
				return len(text), false
			}
			i += 2
		case quote:
			return i + 1, true
		default:
			i++
		}
	}
	return i, false
}

func skipLineComment(text string, i int) int {
	for i < len(text) && text[i] != '\n' {
		i++
	}
	return i
}

func skipBlockComment(text string, i int) int {
	i += 2
	for i+1 < len(text) {
		if text[i] == '*' && text[i+1] == '/' {
			return i + 2
		}
		i++
	}
	return len(text)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// isIdent reports whether s is a plain identifier.
func isIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
