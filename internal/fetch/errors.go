// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fetch

import (
	"errors"
	"fmt"
)

// ErrInvalidHost is returned if the remote host is not a valid host name or
// IP address.
var ErrInvalidHost = errors.New("invalid host")

// StatusError is returned if the server responds with a non-success status.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements the [error] interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Is implements the [errors.Is] interface.
func (*StatusError) Is(other error) bool {
	_, ok := other.(*StatusError)
	return ok
}
