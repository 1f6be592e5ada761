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

package command

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func TestWantsRebuild(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{
			name: "grammar write",
			ev:   fsnotify.Event{Name: "grammar/SqlBaseLexer.g4", Op: fsnotify.Write},
			want: true,
		},
		{
			name: "grammar create",
			ev:   fsnotify.Event{Name: "grammar/SqlBaseParser.g4", Op: fsnotify.Create},
			want: true,
		},
		{
			name: "grammar rename",
			ev:   fsnotify.Event{Name: "grammar/SqlBaseParser.g4", Op: fsnotify.Rename},
			want: true,
		},
		{
			name: "chmod is not a content change",
			ev:   fsnotify.Event{Name: "grammar/SqlBaseLexer.g4", Op: fsnotify.Chmod},
			want: false,
		},
		{
			name: "remove is not a content change",
			ev:   fsnotify.Event{Name: "grammar/SqlBaseLexer.g4", Op: fsnotify.Remove},
			want: false,
		},
		{
			name: "editor temp file",
			ev:   fsnotify.Event{Name: "grammar/.SqlBaseLexer.g4.swp", Op: fsnotify.Write},
			want: false,
		},
		{
			name: "unrelated file",
			ev:   fsnotify.Event{Name: "grammar/notes.txt", Op: fsnotify.Write},
			want: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, wantsRebuild(test.ev))
		})
	}
}
