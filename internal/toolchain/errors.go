// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package toolchain

import "errors"

// ErrRuntimeDirNotFound is returned if the runtime source directory does not
// exist or does not look like a runtime source tree.
var ErrRuntimeDirNotFound = errors.New("could not locate runtime directory")

var errNotADirectory = errors.New("not a directory")
