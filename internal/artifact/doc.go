// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package artifact knows where the build artifacts and run side files live
// and how to inspect, remove and view them.
package artifact
