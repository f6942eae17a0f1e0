// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"

	"github.com/runtimejs/runtimectl/internal/supervisor"
)

const defaultEditor = "vi"

// Editor returns the editor program. It is taken from the EDITOR environment
// variable and defaults to vi.
func Editor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	return defaultEditor
}

// EditSpec returns the command that opens the config file at path in the
// [Editor].
func EditSpec(path string, stdio supervisor.IO) supervisor.Spec {
	return supervisor.Spec{
		IO:   stdio,
		Name: Editor(),
		Args: []string{path},
	}
}
