// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"slices"
)

const (
	// NetworkOff disables guest networking. It is the zero value.
	NetworkOff NetworkMode = ""
	// NetworkUser is QEMU's user mode (NAT) network with fixed host port
	// forwards.
	NetworkUser NetworkMode = "user"
	// NetworkBridge attaches the guest to a host bridge interface.
	NetworkBridge NetworkMode = "bridge"
)

const networkOffName = "off"

// NetworkMode represents QEMU guest network backends.
type NetworkMode string

func (m NetworkMode) isKnown() bool {
	knownNetworkModes := []NetworkMode{
		NetworkOff,
		NetworkUser,
		NetworkBridge,
	}

	return slices.Contains(knownNetworkModes, m)
}

// Enabled returns true if guest networking is requested.
func (m NetworkMode) Enabled() bool {
	return m != NetworkOff
}

// String implements [fmt.Stringer].
func (m NetworkMode) String() string {
	if m == NetworkOff {
		return networkOffName
	}

	return string(m)
}

// Set implements [pflag.Value].
func (m *NetworkMode) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

// Type implements [pflag.Value].
func (*NetworkMode) Type() string {
	return "mode"
}

// MarshalText implements [encoding.TextMarshaler].
func (m NetworkMode) MarshalText() ([]byte, error) {
	if !m.isKnown() {
		return nil, ErrNetworkModeInvalid
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *NetworkMode) UnmarshalText(text []byte) error {
	mode := NetworkMode(text)
	if string(text) == networkOffName {
		mode = NetworkOff
	}

	if !mode.isKnown() || len(text) == 0 {
		return ErrNetworkModeInvalid
	}

	*m = mode

	return nil
}
