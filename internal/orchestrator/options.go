// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package orchestrator

import (
	"github.com/runtimejs/runtimectl/internal/qemu"
)

// RunOptions are the options of a start request.
type RunOptions struct {
	// Build the kernel before starting.
	Rebuild bool

	// Build the initrd before starting.
	RebuildInitrd bool

	// Guest network backend.
	Network qemu.NetworkMode

	// Dump guest network traffic into the capture file.
	NetworkCapture bool

	// Enable KVM.
	HardwareAcceleration bool

	// Run QEMU in curses text mode with serial output to the log file.
	TextMode bool

	// Kernel command line. Nil if not requested.
	KernelAppend *string

	// Fetch kernel and initrd from the artifact server on this host instead
	// of using the local build.
	RemoteHost string

	// Port of the remote artifact server. Zero means default port.
	RemotePort uint16

	// Print the QEMU command instead of running it.
	DryRun bool

	Verbose bool

	// Run build commands in a docker container.
	UseContainerBuild bool
}

// Remote returns true if the artifacts are fetched from a remote host.
func (o RunOptions) Remote() bool {
	return o.RemoteHost != ""
}

// Validate checks for conflicting options.
func (o RunOptions) Validate() error {
	if o.Remote() && (o.Rebuild || o.RebuildInitrd) {
		return ErrRemoteWithLocalBuild
	}

	if o.KernelAppend != nil && *o.KernelAppend == "" {
		return ErrEmptyKernelAppend
	}

	return nil
}

// ServeOptions are the options of a serve request.
type ServeOptions struct {
	// Build the kernel before serving.
	Rebuild bool

	// Build the initrd before serving.
	RebuildInitrd bool

	// Port to listen on. Zero means the configured port.
	Port uint16

	// Run build commands in a docker container.
	UseContainerBuild bool
}
