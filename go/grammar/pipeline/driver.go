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

package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/sparkfmt/sparkfmt/go/grammar/catalog"
)

// State is the driver's position in the pipeline.
type State int

const (
	StateTransform State = iota
	StateGenerate
	StateInject
	StateVerify
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateTransform:
		return "transform"
	case StateGenerate:
		return "generate"
	case StateInject:
		return "inject"
	case StateVerify:
		return "verify"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Driver runs the stages in order, short-circuiting on the first
// failure. A failed stage means the environment or grammar is wrong
// and needs a human; nothing is retried.
//
// The driver owns every document and artifact for one run; only the
// immutable catalog outlives it.
type Driver struct {
	fs     afero.Fs
	cfg    Config
	cat    *catalog.Catalog
	gen    Generator
	logger *slog.Logger
	state  State
}

func NewDriver(fs afero.Fs, cfg Config, cat *catalog.Catalog, gen Generator, logger *slog.Logger) *Driver {
	return &Driver{fs: fs, cfg: cfg, cat: cat, gen: gen, logger: logger, state: StateTransform}
}

// State returns the driver's current state.
func (d *Driver) State() State {
	return d.state
}

// Run executes transform, generate, inject, and verify. It returns nil
// only when every stage succeeded and coverage is complete.
func (d *Driver) Run(ctx context.Context) error {
	d.state = StateTransform
	d.logger.Info("pipeline stage starting", "stage", d.state.String())
	if err := NewTransformStage(d.fs, d.cfg, d.logger).Run(); err != nil {
		return d.fail(err)
	}

	d.state = StateGenerate
	d.logger.Info("pipeline stage starting", "stage", d.state.String())
	if err := d.gen.Generate(ctx); err != nil {
		return d.fail(err)
	}

	d.state = StateInject
	d.logger.Info("pipeline stage starting", "stage", d.state.String())
	if err := NewInjectStage(d.fs, d.cat, d.cfg, d.logger).Run(); err != nil {
		return d.fail(err)
	}

	d.state = StateVerify
	d.logger.Info("pipeline stage starting", "stage", d.state.String())
	report, err := NewVerifyStage(d.fs, d.cat, d.cfg, d.logger).Run()
	if err != nil {
		return d.fail(err)
	}
	if !report.Clean() {
		return d.fail(&CoverageGapError{Report: report})
	}

	d.state = StateDone
	d.logger.Info("pipeline complete")
	return nil
}

func (d *Driver) fail(err error) error {
	failed := d.state
	d.state = StateFailed
	d.logger.Error("pipeline stage failed", "stage", failed.String(), "err", err)
	return fmt.Errorf("%s stage failed: %w", failed, err)
}
