// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package server serves kernel, initrd and an optional iPXE boot script over
// plain HTTP, so machines without a build toolchain can boot them.
//
// The protocol is minimal: each artifact has a fixed path, every other path
// is answered with 404. There is no authentication, compression or range
// support.
package server
