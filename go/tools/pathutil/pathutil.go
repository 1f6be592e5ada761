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

// Package pathutil resolves the directories the build pipeline works in.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// ModuleRoot walks up from start looking for a go.mod file and returns
// the directory containing it.
func ModuleRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod found in any parent of %s", start)
		}
		dir = parent
	}
}

// InstallRoot returns the base directory used to derive the pipeline's
// default paths: the module root when running from a source checkout,
// otherwise the directory holding the executable.
func InstallRoot() string {
	if cwd, err := os.Getwd(); err == nil {
		if root, err := ModuleRoot(cwd); err == nil {
			return root
		}
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	return "."
}
