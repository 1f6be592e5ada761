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

package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleRoot(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	root, err := ModuleRoot(cwd)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(root))
	_, err = os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, err)
}

func TestModuleRootFromNestedDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/m\n"), 0o644))
	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	root, err := ModuleRoot(nested)
	require.NoError(t, err)
	// Resolve symlinks so the comparison survives /tmp -> /private/tmp.
	wantRoot, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestModuleRootNotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := ModuleRoot(dir)
	assert.Error(t, err)
}

func TestInstallRootNeverEmpty(t *testing.T) {
	assert.NotEmpty(t, InstallRoot())
}
