// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/runtimejs/runtimectl/internal/supervisor"
)

const (
	defaultPager = "less"
	dissector    = "tcpdump"
)

// Runner runs external commands to completion.
type Runner interface {
	Run(ctx context.Context, spec supervisor.Spec) (int, error)
}

var lookPath = supervisor.LookPath

// Pager returns the pager command to use, program first. It is taken from the
// PAGER environment variable, split on white space, and defaults to less.
func Pager() []string {
	if pager := strings.Fields(os.Getenv("PAGER")); len(pager) > 0 {
		return pager
	}

	return []string{defaultPager}
}

// LogFile is the serial console output of the guest.
type LogFile struct {
	Path string
}

// Exists returns true if the file exists.
func (f LogFile) Exists() bool {
	return exists(f.Path)
}

// Remove deletes the file if it exists.
func (f LogFile) Remove() error {
	return Remove(f.Path)
}

// View shows the file with the pager.
func (f LogFile) View(ctx context.Context, runner Runner, stdio supervisor.IO) error {
	err := Stat(f.Path).Require("log file")
	if err != nil {
		return err
	}

	return page(ctx, runner, stdio, f.Path)
}

// CaptureFile is a network capture in pcap format written by QEMU. It is
// rendered as text into TextPath for viewing.
type CaptureFile struct {
	Path     string
	TextPath string
}

// Exists returns true if the capture exists.
func (f CaptureFile) Exists() bool {
	return exists(f.Path)
}

// Remove deletes the capture and its text rendering if they exist.
func (f CaptureFile) Remove() error {
	err := Remove(f.Path)
	if err != nil {
		return err
	}

	return Remove(f.TextPath)
}

// View renders the capture as text and shows the result with the pager.
//
// The pager is not run if rendering fails.
func (f CaptureFile) View(ctx context.Context, runner Runner, stdio supervisor.IO) error {
	err := Stat(f.Path).Require("network capture")
	if err != nil {
		return err
	}

	err = f.render(ctx, runner, stdio)
	if err != nil {
		return err
	}

	return page(ctx, runner, stdio, f.TextPath)
}

func (f CaptureFile) render(ctx context.Context, runner Runner, stdio supervisor.IO) error {
	bin, err := lookPath(dissector)
	if err != nil {
		return err //nolint:wrapcheck
	}

	out, err := os.Create(f.TextPath)
	if err != nil {
		return fmt.Errorf("create text file: %w", err)
	}
	defer out.Close()

	code, err := runner.Run(ctx, supervisor.Spec{
		IO: supervisor.IO{
			Stdout: out,
			Stderr: stdio.Stderr,
		},
		Name: bin,
		Args: []string{"-ns", "0", "-X", "-vvv", "-r", f.Path},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", dissector, err)
	}

	if code != 0 {
		return fmt.Errorf("%w: %s exit code %d", ErrRenderFailed, dissector, code)
	}

	return nil
}

func page(ctx context.Context, runner Runner, stdio supervisor.IO, path string) error {
	pager := Pager()

	bin, err := lookPath(pager[0])
	if err != nil {
		return err //nolint:wrapcheck
	}

	code, err := runner.Run(ctx, supervisor.Spec{
		IO:   stdio,
		Name: bin,
		Args: append(pager[1:], path),
	})
	if err != nil {
		return fmt.Errorf("pager: %w", err)
	}

	if code != 0 {
		return fmt.Errorf("%w: exit code %d", ErrViewerFailed, code)
	}

	return nil
}
