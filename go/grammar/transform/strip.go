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

// StripBlock removes every occurrence of `@<tag> { ... }` from grammar
// text, including the braced body and any whitespace immediately
// following it. Text outside matched regions is copied verbatim.
//
// Stripping a tag that does not occur is a no-op, so the pass is
// idempotent. A region whose braces never close is reported as a
// MalformedStructureError rather than consumed to end of input.
func StripBlock(text, tag string) (string, error) {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		if text[i] == '@' {
			if open, ok := matchRegionOpen(text, i, tag); ok {
				end, closed := scanBraced(text, open)
				if !closed {
					return "", &MalformedStructureError{
						Context: "@" + tag + " block",
						Offset:  open,
					}
				}
				// Swallow whitespace trailing the removed region.
				for end < len(text) && isSpace(text[end]) {
					end++
				}
				i = end
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String(), nil
}

// matchRegionOpen checks whether text[at:] starts a `@<tag> {` region
// and returns the index of the opening brace. The tag must end at a
// word boundary so @members does not match @membersExtra.
func matchRegionOpen(text string, at int, tag string) (int, bool) {
	i := at + 1
	if !strings.HasPrefix(text[i:], tag) {
		return 0, false
	}
	i += len(tag)
	if i < len(text) && isIdentChar(text[i]) {
		return 0, false
	}
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i < len(text) && text[i] == '{' {
		return i, true
	}
	return 0, false
}
