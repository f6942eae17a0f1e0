// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/runtimejs/runtimectl/internal/artifact"
	"github.com/runtimejs/runtimectl/internal/config"
	"github.com/runtimejs/runtimectl/internal/netcheck"
	"github.com/runtimejs/runtimectl/internal/orchestrator"
	"github.com/runtimejs/runtimectl/internal/supervisor"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (cfg IO) supervisorIO() supervisor.IO {
	return supervisor.IO{
		Stdin:  cfg.Stdin,
		Stdout: cfg.Stdout,
		Stderr: cfg.Stderr,
	}
}

// app holds the state shared by all commands of a single invocation.
type app struct {
	io         IO
	logger     *log.Logger
	supervisor *supervisor.Supervisor
	reporter   *orchestrator.Reporter

	configPath string
	verbose    bool
}

func newApp(cfg IO) *app {
	logger := newLogger(cfg.Stderr)

	return &app{
		io:         cfg,
		logger:     logger,
		supervisor: supervisor.New(slog.New(logger)),
		reporter:   orchestrator.NewReporter(cfg.Stdout),
	}
}

// orchestrator loads the settings and wires up an [orchestrator.Orchestrator].
func (a *app) orchestrator() (*orchestrator.Orchestrator, error) {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	paths, err := artifact.NewPaths(settings.RuntimePath)
	if err != nil {
		return nil, fmt.Errorf("runtime path: %w", err)
	}

	logger := slog.Default()

	logger.Debug("Settings",
		slog.String("config", a.configPath),
		slog.String("runtime", paths.RuntimeDir),
	)

	return orchestrator.New(orchestrator.Config{
		Settings: settings,
		Paths:    paths,
		Runner:   a.supervisor,
		Bridges:  netcheck.Checker{},
		Stdio:    a.io.supervisorIO(),
		Reporter: a.reporter,
		Logger:   logger,
	}), nil
}

func handleRunError(err error) int {
	var phaseErr *orchestrator.PhaseError
	if errors.As(err, &phaseErr) {
		slog.Error("Run failed",
			slog.String("phase", phaseErr.Phase.String()),
			slog.Any("error", phaseErr.Err),
		)

		return 1
	}

	slog.Error(err.Error())

	return 1
}

// Run is the main entry point for the CLI command. It returns the exit code.
//
// If the context is done, all running child processes are signaled to
// terminate and Run returns 0 without waiting for them.
func Run(ctx context.Context, args []string, cfg IO) int {
	a := newApp(cfg)

	slog.SetDefault(slog.New(a.logger))

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	err := root.ExecuteContext(ctx)

	if ctx.Err() != nil {
		count := a.supervisor.TerminateAll()
		slog.Debug("Terminated child processes", slog.Int("count", count))
		a.reporter.Interrupted()

		return 0
	}

	if err != nil {
		return handleRunError(err)
	}

	return 0
}

func getBuildInfo() (*debug.BuildInfo, error) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrReadBuildInfo
	}

	return buildInfo, nil
}
