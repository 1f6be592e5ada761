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

// grammarbuild prepares the Spark SQL ANTLR grammar for the JavaScript
// runtime: strip the Java-only regions, rewrite predicates, run the
// generator, inject implementations, and verify coverage.
package main

import (
	"log/slog"
	"os"

	"github.com/sparkfmt/sparkfmt/go/cmd/grammarbuild/command"
)

func main() {
	if err := command.Root().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
