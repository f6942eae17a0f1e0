// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package orchestrator

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	bannerBuildOK     = "build ok"
	bannerInitrdOK    = "initrd ok"
	bannerStarting    = "starting qemu"
	bannerServing     = "serving"
	bannerInterrupted = "interrupted"
)

// Reporter prints progress banners for the operator.
//
// Banners are colored only if the writer is a terminal.
type Reporter struct {
	out   io.Writer
	style lipgloss.Style
}

// NewReporter creates a new [Reporter] writing to out.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = io.Discard
	}

	renderer := lipgloss.NewRenderer(out)

	return &Reporter{
		out:   out,
		style: renderer.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// Banner prints the message framed as " --- msg --- ".
func (r *Reporter) Banner(msg string) {
	_, _ = fmt.Fprintln(r.out, r.style.Render(" --- "+msg+" --- "))
}

// Interrupted prints the banner for an operator interrupt.
func (r *Reporter) Interrupted() {
	r.Banner(bannerInterrupted)
}

// Println prints a plain line.
func (r *Reporter) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Ages prints how long ago kernel and initrd were modified.
func (r *Reporter) Ages(now, kernel, initrd time.Time) {
	r.Println(
		"kernel built " + humanize.RelTime(kernel, now, "ago", "from now") +
			", initrd built " + humanize.RelTime(initrd, now, "ago", "from now"),
	)
}
