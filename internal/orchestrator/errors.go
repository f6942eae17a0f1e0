// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package orchestrator

import (
	"errors"
)

var (
	// ErrRemoteWithLocalBuild is returned if a remote run also requests a
	// local build.
	ErrRemoteWithLocalBuild = errors.New("current build is local")

	// ErrEmptyKernelAppend is returned if a kernel command line is requested
	// but empty.
	ErrEmptyKernelAppend = errors.New("kernel command line must not be empty")

	// ErrBuildFailed is returned if the build command exits non-zero.
	ErrBuildFailed = errors.New("build failed")

	// ErrInitrdFailed is returned if the initrd command exits non-zero.
	ErrInitrdFailed = errors.New("initrd failed")

	// ErrQemuFailed is returned if QEMU exits non-zero.
	ErrQemuFailed = errors.New("qemu failed")
)

// PhaseError wraps the error a phase failed with.
type PhaseError struct {
	Phase Phase
	Err   error
}

// Error implements the [error] interface.
func (e *PhaseError) Error() string {
	return e.Phase.String() + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*PhaseError) Is(other error) bool {
	_, ok := other.(*PhaseError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *PhaseError) Unwrap() error {
	return e.Err
}
