// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package netcheck inspects host network interfaces before QEMU is started.
package netcheck

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/vishvananda/netlink"
)

const bridgeLinkType = "bridge"

var (
	// ErrBridgeNotFound is returned if no interface with the name exists.
	ErrBridgeNotFound = errors.New("bridge interface not found")

	// ErrNotABridge is returned if the interface exists but is no bridge.
	ErrNotABridge = errors.New("interface is not a bridge")
)

// Checker checks host network interfaces via netlink.
type Checker struct{}

// CheckBridge returns nil if a bridge interface with the given name exists.
func (Checker) CheckBridge(name string) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		if isLinkNotFound(err) {
			return fmt.Errorf("%w: %s", ErrBridgeNotFound, name)
		}

		return fmt.Errorf("get link %s: %w", name, err)
	}

	if linkType := link.Type(); linkType != bridgeLinkType {
		return fmt.Errorf("%w: %s has type %s", ErrNotABridge, name, linkType)
	}

	return nil
}

func isLinkNotFound(err error) bool {
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENODEV) {
		return true
	}

	var notFound netlink.LinkNotFoundError

	return errors.As(err, &notFound)
}
