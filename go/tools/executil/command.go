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

// Package executil runs external batch tools with explicit environment
// handling and graceful termination on context cancellation.
//
// Go's standard exec.CommandContext kills subprocesses immediately when
// the context is cancelled, which prevents tools like the ANTLR jar from
// flushing their diagnostics. Commands created here receive SIGTERM
// first and are only killed after a grace period. Environment variables
// are added explicitly via AddEnv, avoiding the exec.Cmd.Env pitfall
// where nil means "inherit" but non-nil replaces everything.
package executil

import (
	"context"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// DefaultGracePeriod is the time to wait after SIGTERM before
// escalating to SIGKILL when the parent context is cancelled.
const DefaultGracePeriod = 10 * time.Second

// Cmd wraps exec.Cmd with a builder for safe configuration.
// Create with Command().
type Cmd struct {
	*exec.Cmd
	parentCtx   context.Context
	gracePeriod time.Duration
	extraEnv    []string
}

// Command creates a new Cmd bound to ctx. If ctx is cancelled while the
// command runs, the process receives SIGTERM and is given
// DefaultGracePeriod to exit before SIGKILL.
//
// The command inherits the parent process environment by default; use
// AddEnv to add variables or SetEnv to replace the environment.
func Command(ctx context.Context, name string, args ...string) *Cmd {
	return &Cmd{
		Cmd:         exec.Command(name, args...),
		parentCtx:   ctx,
		gracePeriod: DefaultGracePeriod,
	}
}

// AddEnv adds environment variables, specified as "KEY=value" strings,
// on top of the inherited (or SetEnv-provided) environment. Safe to
// call multiple times; variables accumulate.
func (c *Cmd) AddEnv(keyvals ...string) *Cmd {
	c.extraEnv = append(c.extraEnv, keyvals...)
	return c
}

// SetEnv replaces the entire environment. The command will not inherit
// anything from the parent process.
func (c *Cmd) SetEnv(env []string) *Cmd {
	c.Cmd.Env = env
	return c
}

// SetDir sets the working directory for the command.
func (c *Cmd) SetDir(dir string) *Cmd {
	c.Cmd.Dir = dir
	return c
}

// SetStdout sets the stdout writer for the command.
func (c *Cmd) SetStdout(w io.Writer) *Cmd {
	c.Cmd.Stdout = w
	return c
}

// SetStderr sets the stderr writer for the command.
func (c *Cmd) SetStderr(w io.Writer) *Cmd {
	c.Cmd.Stderr = w
	return c
}

func (c *Cmd) finalizeEnv() {
	if len(c.extraEnv) == 0 {
		return
	}
	if c.Cmd.Env == nil {
		c.Cmd.Env = os.Environ()
	}
	c.Cmd.Env = append(c.Cmd.Env, c.extraEnv...)
}

// Run starts the command and waits for it to complete, terminating it
// gracefully if the parent context is cancelled first.
func (c *Cmd) Run() error {
	c.finalizeEnv()
	if err := c.Cmd.Start(); err != nil {
		return err
	}

	waitDone := make(chan error, 1)
	go func() { waitDone <- c.Cmd.Wait() }()

	select {
	case err := <-waitDone:
		return err
	case <-c.parentCtx.Done():
		if c.Process != nil {
			_ = c.Process.Signal(syscall.SIGTERM)
		}
		select {
		case err := <-waitDone:
			return err
		case <-time.After(c.gracePeriod):
			if c.Process != nil {
				_ = c.Process.Kill()
			}
			return <-waitDone
		}
	}
}
