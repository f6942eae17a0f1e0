// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config handles the user settings file "~/.runtimerc.toml".
//
// Settings are read with viper. Each key can be overridden by an environment
// variable with prefix "RUNTIME_", e.g. RUNTIME_RUNTIMEPATH.
package config
