// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

// DefaultPort is the TCP port artifacts are served on if not set otherwise.
const DefaultPort uint16 = 8077

// Fixed HTTP paths artifacts are served at.
const (
	KernelEndpoint     = "/runtime"
	InitrdEndpoint     = "/initrd"
	BootScriptEndpoint = "/ipxe.txt"
)

// Content types of the served artifacts.
const (
	BinaryContentType = "application/octet-stream"
	TextContentType   = "text/plain"
)
