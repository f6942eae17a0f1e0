// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCommand is returned if the tool is invoked without command.
	ErrNoCommand = errors.New("no command given")

	// ErrReadBuildInfo is returned if the build info cannot be read.
	ErrReadBuildInfo = errors.New("failed to read build info")

	// ErrEditorFailed is returned if the editor exits non-zero.
	ErrEditorFailed = errors.New("editor failed")
)

// ParseArgsError wraps errors that occur during argument parsing.
type ParseArgsError struct {
	err error
	msg string
}

func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return e.msg
	}

	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

func (e *ParseArgsError) Unwrap() error {
	return e.err
}
