// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package supervisor starts external commands asynchronously and keeps track
// of all of them while they are running, so they can be terminated together
// when the operator interrupts the program.
//
// Every process started by [Supervisor.Spawn] is registered until it exits.
// [Supervisor.TerminateAll] sends the termination signal to every process
// registered at the time of the call. It does not wait for them to exit.
package supervisor
