// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import (
	"fmt"
	"path/filepath"
)

const downloadedSuffix = "-downloaded"

// Paths are the absolute paths of all files a run reads or writes.
type Paths struct {
	// RuntimeDir is the runtime source root all other paths are based on.
	RuntimeDir string

	Kernel     string
	Initrd     string
	BootScript string

	// Destinations of fetched artifacts. They never overlap with local build
	// output.
	DownloadedKernel string
	DownloadedInitrd string

	SerialLog   string
	Capture     string
	CaptureText string
}

// NewPaths resolves all paths relative to the given runtime source directory.
func NewPaths(runtimeDir string) (Paths, error) {
	if runtimeDir == "" {
		return Paths{}, fmt.Errorf("runtime dir: %w", ErrEmptyPath)
	}

	dir, err := filepath.Abs(runtimeDir)
	if err != nil {
		return Paths{}, fmt.Errorf("absolute path: %w", err)
	}

	bootDir := filepath.Join(dir, "disk", "boot")
	kernel := filepath.Join(bootDir, "runtime")
	initrd := filepath.Join(bootDir, "initrd")
	capture := filepath.Join(dir, "vm.pcap")

	return Paths{
		RuntimeDir:       dir,
		Kernel:           kernel,
		Initrd:           initrd,
		BootScript:       filepath.Join(bootDir, "ipxe.txt"),
		DownloadedKernel: kernel + downloadedSuffix,
		DownloadedInitrd: initrd + downloadedSuffix,
		SerialLog:        filepath.Join(dir, "serial.txt"),
		Capture:          capture,
		CaptureText:      capture + ".txt",
	}, nil
}

// ForRemote returns a copy of the paths with kernel and initrd pointing to the
// download destinations.
func (p Paths) ForRemote() Paths {
	p.Kernel = p.DownloadedKernel
	p.Initrd = p.DownloadedInitrd

	return p
}

// LogFile returns the serial output log of the paths.
func (p Paths) LogFile() LogFile {
	return LogFile{Path: p.SerialLog}
}

// CaptureFile returns the network capture of the paths.
func (p Paths) CaptureFile() CaptureFile {
	return CaptureFile{Path: p.Capture, TextPath: p.CaptureText}
}
