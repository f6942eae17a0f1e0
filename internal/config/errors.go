// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "errors"

var (
	// ErrNoConfig is returned if the config file does not exist.
	ErrNoConfig = errors.New("could not read config file")

	// ErrConfigParse is returned if the config file is malformed.
	ErrConfigParse = errors.New("config file parse error")

	// ErrConfigExists is returned if the config file should be created but
	// exists already.
	ErrConfigExists = errors.New("config file already exists")
)
