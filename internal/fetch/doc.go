// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package fetch downloads kernel and initrd from a remote artifact server.
//
// Both downloads run concurrently. A fetch only succeeds if both succeed.
// Partially written files of a failed fetch must not be booted.
package fetch
