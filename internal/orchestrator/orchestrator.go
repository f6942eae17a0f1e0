// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/runtimejs/runtimectl/internal/artifact"
	"github.com/runtimejs/runtimectl/internal/config"
	"github.com/runtimejs/runtimectl/internal/fetch"
	"github.com/runtimejs/runtimectl/internal/qemu"
	"github.com/runtimejs/runtimectl/internal/server"
	"github.com/runtimejs/runtimectl/internal/supervisor"
	"github.com/runtimejs/runtimectl/internal/toolchain"
)

// Runner runs external commands to completion.
type Runner interface {
	Run(ctx context.Context, spec supervisor.Spec) (int, error)
}

// Fetcher downloads kernel and initrd from a remote artifact server.
type Fetcher interface {
	Fetch(
		ctx context.Context,
		host string,
		port uint16,
		kernelDest string,
		initrdDest string,
	) (fetch.Result, error)
}

// ServeFunc serves artifacts until the context is done.
type ServeFunc func(ctx context.Context, cfg server.Config) error

// BridgeChecker checks that a host bridge interface exists.
type BridgeChecker interface {
	CheckBridge(name string) error
}

// Config holds the dependencies of an [Orchestrator].
type Config struct {
	Settings config.Settings
	Paths    artifact.Paths

	Runner  Runner
	Fetcher Fetcher
	Serve   ServeFunc
	Bridges BridgeChecker

	// LookPath resolves the QEMU executable. Defaults to
	// [supervisor.LookPath].
	LookPath func(name string) (string, error)

	// KVMAvailable reports if KVM can be used. Defaults to
	// [qemu.KVMAvailable].
	KVMAvailable func() bool

	// Stdio is passed to all external commands.
	Stdio supervisor.IO

	// Reporter prints banners. Defaults to one writing to Stdio.Stdout.
	Reporter *Reporter

	Logger *slog.Logger

	// Now returns the current time. Defaults to [time.Now].
	Now func() time.Time
}

// Orchestrator runs operator requests.
type Orchestrator struct {
	cfg      Config
	pipeline *Pipeline
}

// New creates a new [Orchestrator]. Runner must be set. All other
// dependencies have defaults.
func New(cfg Config) *Orchestrator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Fetcher == nil {
		cfg.Fetcher = fetch.New(fetch.Config{
			Logger:   cfg.Logger,
			Progress: cfg.Stdio.Stderr,
		})
	}

	if cfg.Serve == nil {
		cfg.Serve = Serve
	}

	if cfg.LookPath == nil {
		cfg.LookPath = supervisor.LookPath
	}

	if cfg.KVMAvailable == nil {
		cfg.KVMAvailable = qemu.KVMAvailable
	}

	if cfg.Reporter == nil {
		cfg.Reporter = NewReporter(cfg.Stdio.Stdout)
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Orchestrator{
		cfg:      cfg,
		pipeline: &Pipeline{logger: cfg.Logger},
	}
}

// Serve is the default [ServeFunc]. It runs an artifact server.
func Serve(ctx context.Context, cfg server.Config) error {
	srv, err := server.New(cfg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return srv.Serve(ctx) //nolint:wrapcheck
}

// Phase returns the phase of the current or last run.
func (o *Orchestrator) Phase() Phase {
	return o.pipeline.Phase()
}

// Start boots the runtime in QEMU.
//
// Depending on the options, the kernel and initrd are built or fetched
// first.
func (o *Orchestrator) Start(ctx context.Context, opts RunOptions) error {
	err := opts.Validate()
	if err != nil {
		return err
	}

	tc := o.toolchain(opts.UseContainerBuild)

	err = tc.Validate()
	if err != nil {
		return err //nolint:wrapcheck
	}

	paths := o.cfg.Paths

	var steps []Step

	if opts.Remote() {
		paths = paths.ForRemote()
		steps = append(steps, Step{Fetching, func(ctx context.Context) error {
			return o.fetch(ctx, opts.RemoteHost, opts.RemotePort, paths)
		}})
	} else {
		steps = append(steps, o.buildSteps(tc, opts.Rebuild, opts.RebuildInitrd)...)
	}

	steps = append(steps, Step{Starting, func(ctx context.Context) error {
		return o.start(ctx, opts, paths)
	}})

	return o.pipeline.Run(ctx, steps...)
}

// Serve serves the local kernel and initrd to remote machines until the
// context is done. Depending on the options, they are built first.
func (o *Orchestrator) Serve(ctx context.Context, opts ServeOptions) error {
	tc := o.toolchain(opts.UseContainerBuild)

	err := tc.Validate()
	if err != nil {
		return err //nolint:wrapcheck
	}

	steps := o.buildSteps(tc, opts.Rebuild, opts.RebuildInitrd)
	steps = append(steps, Step{Serving, func(ctx context.Context) error {
		return o.serve(ctx, opts.Port)
	}})

	return o.pipeline.Run(ctx, steps...)
}

// Build builds the runtime kernel.
func (o *Orchestrator) Build(ctx context.Context, docker bool) error {
	tc := o.toolchain(docker)

	err := tc.Validate()
	if err != nil {
		return err //nolint:wrapcheck
	}

	return o.pipeline.Run(ctx, o.buildSteps(tc, true, false)...)
}

// Initrd packs the initrd image.
func (o *Orchestrator) Initrd(ctx context.Context, docker bool) error {
	tc := o.toolchain(docker)

	err := tc.Validate()
	if err != nil {
		return err //nolint:wrapcheck
	}

	return o.pipeline.Run(ctx, o.buildSteps(tc, false, true)...)
}

// ViewLog shows the serial output log of the last text mode run.
func (o *Orchestrator) ViewLog(ctx context.Context) error {
	return o.cfg.Paths.LogFile().View(ctx, o.cfg.Runner, o.cfg.Stdio) //nolint:wrapcheck
}

// ViewNetdump shows the network capture of the last run.
func (o *Orchestrator) ViewNetdump(ctx context.Context) error {
	return o.cfg.Paths.CaptureFile().View(ctx, o.cfg.Runner, o.cfg.Stdio) //nolint:wrapcheck
}

// Interrupted reports an operator interrupt.
func (o *Orchestrator) Interrupted() {
	o.cfg.Reporter.Interrupted()
}

func (o *Orchestrator) toolchain(docker bool) toolchain.Config {
	return toolchain.Config{
		RuntimeDir:       o.cfg.Paths.RuntimeDir,
		CrossCompilerDir: o.cfg.Settings.CrossCompilerPath,
		DockerImage:      o.cfg.Settings.DockerImage,
		Docker:           docker,
	}
}

func (o *Orchestrator) buildSteps(tc toolchain.Config, kernel, initrd bool) []Step {
	var steps []Step

	if kernel {
		steps = append(steps, Step{Building, func(ctx context.Context) error {
			return o.runTool(ctx, tc.BuildSpec(o.cfg.Stdio), ErrBuildFailed, bannerBuildOK)
		}})
	}

	if initrd {
		steps = append(steps, Step{BuildingInitrd, func(ctx context.Context) error {
			return o.runTool(ctx, tc.InitrdSpec(o.cfg.Stdio), ErrInitrdFailed, bannerInitrdOK)
		}})
	}

	return steps
}

func (o *Orchestrator) runTool(
	ctx context.Context,
	spec supervisor.Spec,
	failure error,
	banner string,
) error {
	o.cfg.Logger.Debug("Run", slog.String("command", spec.String()))

	exitCode, err := o.cfg.Runner.Run(ctx, spec)
	if err != nil {
		return fmt.Errorf("%w: %w", failure, err)
	}

	if exitCode != 0 {
		return fmt.Errorf("%w: exit code %d", failure, exitCode)
	}

	o.cfg.Reporter.Banner(banner)

	return nil
}

func (o *Orchestrator) fetch(
	ctx context.Context,
	host string,
	port uint16,
	paths artifact.Paths,
) error {
	result, err := o.cfg.Fetcher.Fetch(ctx, host, port, paths.Kernel, paths.Initrd)
	if err != nil {
		return err //nolint:wrapcheck
	}

	o.cfg.Logger.Info("Fetched",
		slog.Int64("kernel_bytes", result.Kernel.Bytes),
		slog.Int64("initrd_bytes", result.Initrd.Bytes),
	)

	return nil
}

func (o *Orchestrator) start(ctx context.Context, opts RunOptions, paths artifact.Paths) error {
	kernel := artifact.Stat(paths.Kernel)

	err := kernel.Require("kernel")
	if err != nil {
		return err //nolint:wrapcheck
	}

	initrd := artifact.Stat(paths.Initrd)

	err = initrd.Require("initrd")
	if err != nil {
		return err //nolint:wrapcheck
	}

	spec := qemu.LaunchSpec{
		Executable:     o.cfg.Settings.QemuBinary,
		Kernel:         paths.Kernel,
		Initrd:         paths.Initrd,
		SerialLog:      paths.SerialLog,
		Capture:        paths.Capture,
		Network:        opts.Network,
		Bridge:         o.cfg.Settings.BridgeInterface,
		NetworkCapture: opts.NetworkCapture,
		KVM:            opts.HardwareAcceleration,
		TextMode:       opts.TextMode,
		KernelAppend:   opts.KernelAppend,
	}

	cmd, err := qemu.NewCommand(spec)
	if err != nil {
		return err //nolint:wrapcheck
	}

	o.preflight(opts)

	o.cfg.Reporter.Banner(bannerStarting)
	o.cfg.Reporter.Ages(o.cfg.Now(), kernel.ModTime(), initrd.ModTime())

	if opts.DryRun {
		o.cfg.Reporter.Println(cmd.String())
		return nil
	}

	for _, remove := range []func() error{
		paths.LogFile().Remove,
		paths.CaptureFile().Remove,
	} {
		err := remove()
		if err != nil {
			return fmt.Errorf("remove stale output: %w", err)
		}
	}

	executable, err := o.cfg.LookPath(cmd.Executable)
	if err != nil {
		return err
	}

	o.cfg.Logger.Debug("Run", slog.String("command", cmd.String()))

	exitCode, err := o.cfg.Runner.Run(ctx, supervisor.Spec{
		IO:   o.cfg.Stdio,
		Name: executable,
		Args: cmd.Args,
		Dir:  paths.RuntimeDir,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQemuFailed, err)
	}

	if exitCode != 0 {
		return fmt.Errorf("%w: exit code %d", ErrQemuFailed, exitCode)
	}

	return nil
}

// preflight warns about host conditions QEMU will likely fail on.
func (o *Orchestrator) preflight(opts RunOptions) {
	if opts.HardwareAcceleration && !o.cfg.KVMAvailable() {
		o.cfg.Logger.Warn("KVM requested but /dev/kvm is not accessible")
	}

	if opts.Network == qemu.NetworkBridge && o.cfg.Bridges != nil {
		bridge := o.cfg.Settings.BridgeInterface
		if bridge == "" {
			bridge = qemu.DefaultBridge
		}

		err := o.cfg.Bridges.CheckBridge(bridge)
		if err != nil {
			o.cfg.Logger.Warn("Bridge check failed", slog.Any("error", err))
		}
	}
}

func (o *Orchestrator) serve(ctx context.Context, port uint16) error {
	paths := o.cfg.Paths

	err := artifact.Stat(paths.Kernel).Require("kernel")
	if err != nil {
		return err //nolint:wrapcheck
	}

	err = artifact.Stat(paths.Initrd).Require("initrd")
	if err != nil {
		return err //nolint:wrapcheck
	}

	if port == 0 {
		port = o.cfg.Settings.ServePort
	}

	if port == 0 {
		port = artifact.DefaultPort
	}

	cfg := server.Config{
		Kernel: paths.Kernel,
		Initrd: paths.Initrd,
		Port:   port,
		Logger: o.cfg.Logger,
	}

	if artifact.Stat(paths.BootScript).Present() {
		cfg.BootScript = paths.BootScript
	}

	o.cfg.Reporter.Banner(bannerServing)
	o.cfg.Logger.Info("Listening", slog.Uint64("port", uint64(port)))

	return o.cfg.Serve(ctx, cfg)
}
