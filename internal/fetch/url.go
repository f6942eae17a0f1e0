// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fetch

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/runtimejs/runtimectl/internal/artifact"
)

// BaseURL validates host and port and returns the server's base URL. Port
// zero means [artifact.DefaultPort].
func BaseURL(host string, port uint16) (*url.URL, error) {
	if host == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidHost)
	}

	if strings.ContainsAny(host, "/?#@[] \t\r\n") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHost, host)
	}

	// Colons are only valid as part of IPv6 addresses. A port must be given
	// separately.
	if strings.Contains(host, ":") && net.ParseIP(host) == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHost, host)
	}

	if port == 0 {
		port = artifact.DefaultPort
	}

	base := &url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10)),
	}

	_, err := url.Parse(base.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHost, err)
	}

	return base, nil
}
