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
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sparkfmt/sparkfmt/go/grammar/catalog"
	"github.com/sparkfmt/sparkfmt/go/grammar/pipeline"
)

// rebuildDelay coalesces the event bursts editors produce on save.
const rebuildDelay = 300 * time.Millisecond

// wantsRebuild reports whether a watcher event should schedule a
// rebuild: a content-changing operation on a .g4 file.
func wantsRebuild(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".g4" {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func watchCommand(bc *buildCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild whenever a source grammar changes",
		Long: `Runs the full pipeline once, then watches the grammar directory and
re-runs the pipeline each time a .g4 file changes, until interrupted.
A failed rebuild is reported and watching continues.`,
		Args: cobra.NoArgs,
		RunE: bc.watch,
	}
}

func (bc *buildCommand) watch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	rebuild := func() {
		fs := afero.NewOsFs()
		gen := pipeline.NewAntlrGenerator(fs, bc.cfg, bc.logger)
		if err := pipeline.NewDriver(fs, bc.cfg, cat, gen, bc.logger).Run(ctx); err != nil {
			bc.logger.Error("build failed", "err", err)
		}
	}
	rebuild()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(bc.cfg.GrammarDir); err != nil {
		return err
	}
	bc.logger.Info("watching for grammar changes", "dir", bc.cfg.GrammarDir)

	var delay *time.Timer
	var pending <-chan time.Time
	defer func() {
		if delay != nil {
			delay.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !wantsRebuild(ev) {
				continue
			}
			if delay == nil {
				delay = time.NewTimer(rebuildDelay)
				pending = delay.C
			} else {
				delay.Reset(rebuildDelay)
			}
		case <-pending:
			rebuild()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			bc.logger.Warn("watcher error", "err", err)
		}
	}
}
