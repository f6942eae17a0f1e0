// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "github.com/runtimejs/runtimectl/internal/supervisor"

// Command is a fully assembled QEMU invocation.
type Command struct {
	Executable string
	Args       []string
}

// NewCommand creates a new [Command] from the given [LaunchSpec].
//
// The executable defaults to [DefaultExecutable].
func NewCommand(spec LaunchSpec) (*Command, error) {
	args, err := BuildArgs(spec)
	if err != nil {
		return nil, err
	}

	executable := spec.Executable
	if executable == "" {
		executable = DefaultExecutable
	}

	return &Command{
		Executable: executable,
		Args:       args,
	}, nil
}

// String implements [fmt.Stringer]. It is quoted by [supervisor.QuoteArgs].
func (c *Command) String() string {
	return supervisor.QuoteArgs(append([]string{c.Executable}, c.Args...)...)
}
