// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu composes the argument vector for booting a runtime kernel and
// initrd with QEMU. It expects the required QEMU binary to be present on the
// system.
//
// The argument list is built from a [LaunchSpec] by [BuildArgs]. The result
// depends on nothing but the [LaunchSpec], so equal specs always yield equal
// arguments. This is what a dry run reports.
package qemu
