// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/runtimejs/runtimectl/internal/config"
	"github.com/runtimejs/runtimectl/internal/orchestrator"
	"github.com/runtimejs/runtimectl/internal/qemu"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "runtime",
		Short:         "Build, serve and run runtime.js in QEMU",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return ErrNoCommand
		},
		PersistentPreRunE: func(*cobra.Command, []string) error {
			setupLogging(a.logger, a.verbose)

			if a.configPath == "" {
				path, err := config.DefaultPath()
				if err != nil {
					return err //nolint:wrapcheck
				}

				a.configPath = path
			}

			return nil
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ParseArgsError{msg: "parse args", err: err}
	})

	root.PersistentFlags().StringVar(
		&a.configPath,
		"config",
		"",
		"config file (default ~/"+config.FileName+")",
	)

	root.AddCommand(
		newStartCommand(a),
		newBuildCommand(a),
		newInitrdCommand(a),
		newServeCommand(a),
		newLogCommand(a),
		newNetdumpCommand(a),
		newInitConfigCommand(a),
		newEditConfigCommand(a),
		newVersionCommand(a),
	)

	return root
}

func addVerboseFlag(a *app, flags *pflag.FlagSet) {
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug output")
}

func newStartCommand(a *app) *cobra.Command {
	var (
		opts       orchestrator.RunOptions
		appendLine string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start local runtime.js instance in QEMU",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("append") {
				opts.KernelAppend = &appendLine
			}

			opts.Verbose = a.verbose

			// Conflicting options fail before anything is loaded.
			err := opts.Validate()
			if err != nil {
				return err //nolint:wrapcheck
			}

			o, err := a.orchestrator()
			if err != nil {
				return err
			}

			return o.Start(cmd.Context(), opts) //nolint:wrapcheck
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.Rebuild, "build", false, "build kernel before start")
	flags.BoolVar(&opts.RebuildInitrd, "initrd", false, "build initrd before start")
	flags.Var(&opts.Network, "net", "enable networking in QEMU (user, bridge)")
	flags.Lookup("net").NoOptDefVal = string(qemu.NetworkUser)
	flags.BoolVar(&opts.NetworkCapture, "netdump", false, "dump all network activity into vm.pcap file")
	flags.BoolVar(&opts.HardwareAcceleration, "kvm", false, "enable KVM")
	flags.BoolVar(&opts.TextMode, "curses", false, "use QEMU in text-mode")
	flags.StringVar(&opts.RemoteHost, "host", "", "fetch kernel and initrd from artifact server on this host")
	flags.Uint16Var(&opts.RemotePort, "port", 0, "port of the remote artifact server (default 8077)")
	flags.StringVar(&appendLine, "append", "", "kernel command line")
	flags.BoolVar(&opts.DryRun, "dry", false, "print QEMU command instead of running it")
	flags.BoolVar(&opts.UseContainerBuild, "docker", false, "build in docker container")
	addVerboseFlag(a, flags)

	return cmd
}

func newBuildCommand(a *app) *cobra.Command {
	var docker bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build runtime.js kernel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := a.orchestrator()
			if err != nil {
				return err
			}

			return o.Build(cmd.Context(), docker) //nolint:wrapcheck
		},
	}

	cmd.Flags().BoolVar(&docker, "docker", false, "build in docker container")
	addVerboseFlag(a, cmd.Flags())

	return cmd
}

func newInitrdCommand(a *app) *cobra.Command {
	var docker bool

	cmd := &cobra.Command{
		Use:   "initrd",
		Short: "Pack initrd image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := a.orchestrator()
			if err != nil {
				return err
			}

			return o.Initrd(cmd.Context(), docker) //nolint:wrapcheck
		},
	}

	cmd.Flags().BoolVar(&docker, "docker", false, "build in docker container")
	addVerboseFlag(a, cmd.Flags())

	return cmd
}

func newServeCommand(a *app) *cobra.Command {
	var opts orchestrator.ServeOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve kernel and initrd over HTTP for remote machines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := a.orchestrator()
			if err != nil {
				return err
			}

			return o.Serve(cmd.Context(), opts) //nolint:wrapcheck
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.Rebuild, "build", false, "build kernel before serving")
	flags.BoolVar(&opts.RebuildInitrd, "initrd", false, "build initrd before serving")
	flags.Uint16Var(&opts.Port, "port", 0, "port to listen on (default from config)")
	flags.BoolVar(&opts.UseContainerBuild, "docker", false, "build in docker container")

	return cmd
}

func newLogCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "View serial output of the last text-mode run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := a.orchestrator()
			if err != nil {
				return err
			}

			return o.ViewLog(cmd.Context()) //nolint:wrapcheck
		},
	}
}

func newNetdumpCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "netdump",
		Short: "View network activity dump of the last run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := a.orchestrator()
			if err != nil {
				return err
			}

			return o.ViewNetdump(cmd.Context()) //nolint:wrapcheck
		},
	}
}

func newInitConfigCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "initconfig",
		Short: "Create default config file in user home directory (~/" + config.FileName + ")",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			err := config.Init(a.configPath, force)
			if err != nil {
				return err //nolint:wrapcheck
			}

			_, _ = fmt.Fprintf(a.io.Stdout, "created %q config file\n", a.configPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")

	return cmd
}

func newEditConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "editconfig",
		Short: "Open config file in default editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec := config.EditSpec(a.configPath, a.io.supervisorIO())

			exitCode, err := a.supervisor.Run(cmd.Context(), spec)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrEditorFailed, err)
			}

			if exitCode != 0 {
				return fmt.Errorf("%w: exit code %d", ErrEditorFailed, exitCode)
			}

			return nil
		},
	}
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			buildInfo, err := getBuildInfo()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(a.io.Stdout, "Version: %s\n", buildInfo.Main.Version)

			return nil
		},
	}
}
