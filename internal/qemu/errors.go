// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "errors"

var (
	// ErrNetworkModeInvalid is returned if a network mode is unknown.
	ErrNetworkModeInvalid = errors.New("unknown network mode")

	// ErrArgumentCollision is returned if two [Argument]s are considered equal.
	ErrArgumentCollision = errors.New("colliding args")
)

// ArgumentError indicates an issue with an input argument.
type ArgumentError struct {
	msg string
	err error
}

// Error implements the [error] interface.
func (e *ArgumentError) Error() string {
	if e.err == nil {
		return "argument error: " + e.msg
	}

	return "argument error: " + e.msg + ": " + e.err.Error()
}

// Is implements the [errors.Is] interface.
func (*ArgumentError) Is(other error) bool {
	_, ok := other.(*ArgumentError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ArgumentError) Unwrap() error {
	return e.err
}
