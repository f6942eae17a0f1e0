// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package orchestrator maps operator requests to an ordered sequence of
// phases and runs them.
//
// A start request may first build the kernel and the initrd or, for a remote
// run, fetch both from an artifact server. It then boots QEMU. A serve request
// may build first and then serves the local artifacts over HTTP. Phases run
// strictly one after another. The first failing phase ends the run with a
// [PhaseError].
package orchestrator
