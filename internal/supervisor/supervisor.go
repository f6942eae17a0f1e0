// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"golang.org/x/sys/unix"
)

// Process is a handle to a process started by a [Supervisor].
type Process struct {
	cmd  *exec.Cmd
	done chan struct{}

	// Set before done is closed.
	exitCode int
	err      error
}

// Pid returns the process ID.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Wait blocks until the process exited or the context is done. It returns the
// exit code of the process. The exit code is -1 if the process was terminated
// by a signal.
//
// If the context is done first, the process is left running and the context's
// error is returned.
func (p *Process) Wait(ctx context.Context) (int, error) {
	select {
	case <-p.done:
		return p.exitCode, p.err
	case <-ctx.Done():
		return -1, ctx.Err()
	}
}

func (p *Process) signal(sig os.Signal) error {
	err := p.cmd.Process.Signal(sig)
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}

	return err //nolint:wrapcheck
}

// Supervisor starts processes and tracks them until they exit.
//
// The zero value is not usable, create one with [New].
type Supervisor struct {
	mu      sync.Mutex
	running map[*Process]struct{}

	termSignal os.Signal
	logger     *slog.Logger
}

// Option configures a [Supervisor].
type Option func(*Supervisor)

// WithTermSignal sets the signal sent by [Supervisor.TerminateAll].
func WithTermSignal(sig os.Signal) Option {
	return func(s *Supervisor) {
		s.termSignal = sig
	}
}

// New creates a new [Supervisor]. Unless configured otherwise, processes are
// terminated with SIGINT, like an interactive shell would do.
func New(logger *slog.Logger, opts ...Option) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}

	sup := &Supervisor{
		running:    make(map[*Process]struct{}),
		termSignal: unix.SIGINT,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(sup)
	}

	return sup
}

// Spawn starts the command described by spec and returns without waiting for
// it to finish.
//
// The optional onExit function is called exactly once with the exit code
// after the process exited and was removed from the tracked set.
func (s *Supervisor) Spawn(spec Spec, onExit func(exitCode int)) (*Process, error) {
	cmd, err := spec.command()
	if err != nil {
		return nil, err
	}

	err = cmd.Start()
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", spec.Name, err)
	}

	proc := &Process{
		cmd:  cmd,
		done: make(chan struct{}),
	}

	s.track(proc)

	s.logger.Debug("Process started",
		slog.Int("pid", proc.Pid()),
		slog.String("command", spec.String()))

	go func() {
		proc.exitCode, proc.err = waitExitCode(cmd)

		s.untrack(proc)

		s.logger.Debug("Process exited",
			slog.Int("pid", proc.Pid()),
			slog.Int("exit_code", proc.exitCode))

		close(proc.done)

		if onExit != nil {
			onExit(proc.exitCode)
		}
	}()

	return proc, nil
}

// Run starts the command and waits for it to exit. See [Process.Wait] for
// the return values.
func (s *Supervisor) Run(ctx context.Context, spec Spec) (int, error) {
	proc, err := s.Spawn(spec, nil)
	if err != nil {
		return -1, err
	}

	return proc.Wait(ctx)
}

// TerminateAll sends the termination signal to all currently tracked
// processes. It does not wait for the processes to exit. It returns the number
// of processes signaled.
func (s *Supervisor) TerminateAll() int {
	s.mu.Lock()
	procs := make([]*Process, 0, len(s.running))

	for proc := range s.running {
		procs = append(procs, proc)
	}
	s.mu.Unlock()

	for _, proc := range procs {
		err := proc.signal(s.termSignal)
		if err != nil {
			s.logger.Warn("Failed to terminate process",
				slog.Int("pid", proc.Pid()),
				slog.Any("error", err))
		}
	}

	return len(procs)
}

// Len returns the number of currently tracked processes.
func (s *Supervisor) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.running)
}

func (s *Supervisor) track(proc *Process) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running[proc] = struct{}{}
}

func (s *Supervisor) untrack(proc *Process) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.running, proc)
}

func waitExitCode(cmd *exec.Cmd) (int, error) {
	err := cmd.Wait()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return -1, fmt.Errorf("wait: %w", err)
	}

	return cmd.ProcessState.ExitCode(), nil
}
