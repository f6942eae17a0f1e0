// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import (
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Lookup is the result of looking for a file. It is either present, with
// the file's metadata, or absent.
type Lookup struct {
	Path string
	info fs.FileInfo
}

// Stat looks up the file at path. Any stat failure results in an absent
// [Lookup].
func Stat(path string) Lookup {
	info, err := os.Stat(path)
	if err != nil {
		return Lookup{Path: path}
	}

	return Lookup{Path: path, info: info}
}

// Present returns true if the file exists.
func (l Lookup) Present() bool {
	return l.info != nil
}

// ModTime returns the modification time. It is the zero time if absent.
func (l Lookup) ModTime() time.Time {
	if l.info == nil {
		return time.Time{}
	}

	return l.info.ModTime()
}

// Require returns an error wrapping [ErrNoArtifact] naming the kind and path
// if the file is absent.
func (l Lookup) Require(kind string) error {
	if !l.Present() {
		return fmt.Errorf("%w: no %s found at %q", ErrNoArtifact, kind, l.Path)
	}

	return nil
}

func exists(path string) bool {
	return Stat(path).Present()
}

// Remove deletes the file at path if it exists. It is a no-op otherwise.
func Remove(path string) error {
	if !exists(path) {
		return nil
	}

	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove: %w", err)
	}

	return nil
}
