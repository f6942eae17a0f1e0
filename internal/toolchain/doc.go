// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package toolchain describes the external commands that build the runtime
// kernel and its initrd. Both can run natively or wrapped in a docker
// container that has the runtime source tree mounted.
package toolchain
