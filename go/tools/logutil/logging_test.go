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

package logutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)

	level, err := fs.GetString("log-level")
	require.NoError(t, err)
	assert.Equal(t, "info", level)

	format, err := fs.GetString("log-format")
	require.NoError(t, err)
	assert.Equal(t, "text", format)
}

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"bogus", slog.LevelInfo, slog.LevelDebug},
	}

	for _, test := range tests {
		t.Run(test.level, func(t *testing.T) {
			logger := Setup(test.level, "text")
			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, test.enabled))
			assert.False(t, logger.Enabled(ctx, test.muted))
		})
	}
}

func TestSetupInstallsDefault(t *testing.T) {
	logger := Setup("info", "json")
	assert.Equal(t, logger, slog.Default())
}
