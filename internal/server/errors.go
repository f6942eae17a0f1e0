// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package server

import "errors"

// ErrBind is returned if the listening socket could not be created.
var ErrBind = errors.New("bind failed")
