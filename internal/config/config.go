// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// FileName is the name of the config file in the user's home directory.
	FileName = ".runtimerc.toml"

	envPrefix = "RUNTIME"
	homeVar   = "${HOME}"
)

// Settings are the user settings.
type Settings struct {
	// RuntimePath is the runtime source root.
	RuntimePath string `mapstructure:"RuntimePath" toml:"RuntimePath"`

	// CrossCompilerPath is the root of the cross compiler installation.
	CrossCompilerPath string `mapstructure:"CrossCompilerPath" toml:"CrossCompilerPath"`

	QemuBinary      string `mapstructure:"QemuBinary"      toml:"QemuBinary"`
	DockerImage     string `mapstructure:"DockerImage"     toml:"DockerImage"`
	BridgeInterface string `mapstructure:"BridgeInterface" toml:"BridgeInterface"`
	ServePort       uint16 `mapstructure:"ServePort"       toml:"ServePort"`
}

// Default returns the settings written by [Init].
func Default() Settings {
	return Settings{
		RuntimePath:       homeVar + "/runtime",
		CrossCompilerPath: homeVar + "/cross",
		QemuBinary:        "qemu-system-x86_64",
		DockerImage:       "runtimejs",
		BridgeInterface:   "br0",
		ServePort:         8077,
	}
}

// DefaultPath returns the path of the config file in the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, FileName), nil
}

// Load reads the settings from the given TOML file.
//
// Missing keys are set to their [Default] values. "${HOME}" is expanded in
// path values.
func Load(path string) (Settings, error) {
	var settings Settings

	_, err := os.Stat(path)
	if err != nil {
		return settings, fmt.Errorf(
			"%w %q: use \"runtime initconfig\" to create it using default settings",
			ErrNoConfig,
			path,
		)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("RuntimePath", defaults.RuntimePath)
	v.SetDefault("CrossCompilerPath", defaults.CrossCompilerPath)
	v.SetDefault("QemuBinary", defaults.QemuBinary)
	v.SetDefault("DockerImage", defaults.DockerImage)
	v.SetDefault("BridgeInterface", defaults.BridgeInterface)
	v.SetDefault("ServePort", defaults.ServePort)

	err = v.ReadInConfig()
	if err != nil {
		return settings, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	err = v.Unmarshal(&settings)
	if err != nil {
		return settings, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	settings.RuntimePath = ExpandHome(settings.RuntimePath)
	settings.CrossCompilerPath = ExpandHome(settings.CrossCompilerPath)

	return settings, nil
}

// Init writes the [Default] settings to the given path. An existing file is
// only replaced if force is set.
func Init(path string, force bool) error {
	_, err := os.Stat(path)
	if err == nil && !force {
		return fmt.Errorf("%w: %s, use --force to overwrite", ErrConfigExists, path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	err = os.WriteFile(path, data, 0o644) //nolint:gosec,mnd
	if err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ExpandHome replaces all occurrences of "${HOME}" with the user's home
// directory.
func ExpandHome(path string) string {
	if !strings.Contains(path, homeVar) {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return strings.ReplaceAll(path, homeVar, home)
}
