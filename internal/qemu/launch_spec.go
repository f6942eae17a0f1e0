// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"strconv"
)

const (
	// DefaultExecutable is the QEMU binary used if none is configured.
	DefaultExecutable = "qemu-system-x86_64"

	// DefaultMemory is the guest memory in MB.
	DefaultMemory uint64 = 512

	// DefaultSMP is the number of guest CPUs.
	DefaultSMP uint64 = 1

	// DefaultBridge is the host bridge interface used in bridge network mode.
	DefaultBridge = "br0"
)

const (
	nicSpec = "nic,model=virtio,macaddr=1a:46:0b:ca:bc:7c"

	userNetSpec = "user,net=192.168.76.0/24,dhcpstart=192.168.76.9," +
		"hostfwd=udp::9000-:9000,hostfwd=tcp::9000-:9000"
)

// LaunchSpec defines the parameters for a runtime QEMU launch.
type LaunchSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// Path to the runtime kernel to boot.
	Kernel string

	// Path to the initrd to boot with.
	Initrd string

	// Path of the file the guest serial console is written to in text mode.
	SerialLog string

	// Path of the packet capture file written if NetworkCapture is set.
	Capture string

	// Guest network backend. Zero value disables networking.
	Network NetworkMode

	// Host bridge interface for [NetworkBridge] mode.
	Bridge string

	// Dump all guest network traffic into Capture.
	NetworkCapture bool

	// Enable KVM hardware acceleration.
	KVM bool

	// Run QEMU with curses text UI. Serial output goes to SerialLog then.
	TextMode bool

	// Kernel command line. Nil means none is passed. An empty string is an
	// error.
	KernelAppend *string

	// Memory for the machine in MB. Zero means [DefaultMemory].
	Memory uint64

	// Number of CPUs for the guest. Zero means [DefaultSMP].
	SMP uint64
}

// Validate checks for missing and malformed values.
func (s *LaunchSpec) Validate() error {
	if s.Kernel == "" {
		return &ArgumentError{msg: "kernel path is empty"}
	}

	if s.Initrd == "" {
		return &ArgumentError{msg: "initrd path is empty"}
	}

	if !s.Network.isKnown() {
		return &ArgumentError{
			msg: "network mode " + strconv.Quote(string(s.Network)),
			err: ErrNetworkModeInvalid,
		}
	}

	if s.NetworkCapture && s.Capture == "" {
		return &ArgumentError{msg: "capture path is empty"}
	}

	if s.TextMode && s.SerialLog == "" {
		return &ArgumentError{msg: "serial log path is empty"}
	}

	if s.KernelAppend != nil && *s.KernelAppend == "" {
		return &ArgumentError{msg: "kernel command line is empty"}
	}

	return nil
}

// Arguments compiles the ordered argument list for the QEMU command.
func (s *LaunchSpec) Arguments() ([]Argument, error) {
	err := s.Validate()
	if err != nil {
		return nil, err
	}

	memory := s.Memory
	if memory == 0 {
		memory = DefaultMemory
	}

	smp := s.SMP
	if smp == 0 {
		smp = DefaultSMP
	}

	args := []Argument{
		UniqueArg("m", strconv.FormatUint(memory, 10)),
		UniqueArg("smp", strconv.FormatUint(smp, 10)),
		// GDB stub on tcp::1234.
		UniqueArg("s"),
		UniqueArg("kernel", s.Kernel),
		UniqueArg("initrd", s.Initrd),
	}

	switch s.Network {
	case NetworkUser:
		args = append(args,
			RepeatableArg("net", nicSpec),
			RepeatableArg("net", userNetSpec),
		)
	case NetworkBridge:
		bridge := s.Bridge
		if bridge == "" {
			bridge = DefaultBridge
		}

		args = append(args,
			RepeatableArg("net", nicSpec),
			RepeatableArg("net", "bridge", "br="+bridge),
		)
	case NetworkOff:
	}

	if s.NetworkCapture {
		args = append(args, RepeatableArg("net", "dump", "file="+s.Capture))
	}

	if s.KVM {
		args = append(args,
			UniqueArg("enable-kvm"),
			UniqueArg("no-kvm-irqchip"),
		)
	}

	if s.TextMode {
		args = append(args,
			UniqueArg("curses"),
			UniqueArg("serial", "file:"+s.SerialLog),
		)
	} else {
		args = append(args, UniqueArg("serial", "stdio"))
	}

	if s.KernelAppend != nil {
		args = append(args, UniqueArg("append", *s.KernelAppend))
	}

	return args, nil
}

// BuildArgs returns the QEMU argument vector for the given spec.
//
// The result only depends on spec, which is not modified.
func BuildArgs(spec LaunchSpec) ([]string, error) {
	args, err := spec.Arguments()
	if err != nil {
		return nil, err
	}

	return BuildArgumentStrings(args)
}
