// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

const logPrefix = "runtime"

func newLogger(writer io.Writer) *log.Logger {
	return log.NewWithOptions(writer, log.Options{
		Prefix: logPrefix,
		Level:  log.InfoLevel,
	})
}

func setupLogging(logger *log.Logger, debug bool) {
	if debug {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportTimestamp(true)
	}

	slog.SetDefault(slog.New(logger))
}
