// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import "errors"

var (
	// ErrNoArtifact is returned if an artifact file does not exist.
	ErrNoArtifact = errors.New("no such artifact")

	// ErrRenderFailed is returned if the capture could not be rendered as
	// text.
	ErrRenderFailed = errors.New("rendering capture failed")

	// ErrViewerFailed is returned if the pager exits with non-zero exit code.
	ErrViewerFailed = errors.New("viewer failed")

	// ErrEmptyPath is returned if a path must not be empty.
	ErrEmptyPath = errors.New("path must not be empty")
)
