// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor

import "errors"

var (
	// ErrExecutableNotFound is returned if a required external program is not
	// installed.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrEmptyCommand is returned if a [Spec] has no command name.
	ErrEmptyCommand = errors.New("command name must not be empty")
)
