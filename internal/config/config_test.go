// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runtimejs/runtimectl/internal/config"
	"github.com/runtimejs/runtimectl/internal/supervisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		name     string
		content  string
		env      map[string]string
		expected config.Settings
	}{
		{
			name: "paths only",
			content: `RuntimePath = "${HOME}/src/runtime"
CrossCompilerPath = "/opt/cross"
`,
			expected: config.Settings{
				RuntimePath:       "/home/tester/src/runtime",
				CrossCompilerPath: "/opt/cross",
				QemuBinary:        "qemu-system-x86_64",
				DockerImage:       "runtimejs",
				BridgeInterface:   "br0",
				ServePort:         8077,
			},
		},
		{
			name: "all keys",
			content: `RuntimePath = "/src/runtime"
CrossCompilerPath = "${HOME}/cross"
QemuBinary = "/usr/local/bin/qemu-system-x86_64"
DockerImage = "runtimejs:dev"
BridgeInterface = "virbr0"
ServePort = 9090
`,
			expected: config.Settings{
				RuntimePath:       "/src/runtime",
				CrossCompilerPath: "/home/tester/cross",
				QemuBinary:        "/usr/local/bin/qemu-system-x86_64",
				DockerImage:       "runtimejs:dev",
				BridgeInterface:   "virbr0",
				ServePort:         9090,
			},
		},
		{
			name:    "environment override",
			content: `RuntimePath = "/src/runtime"`,
			env: map[string]string{
				"RUNTIME_BRIDGEINTERFACE": "br1",
			},
			expected: config.Settings{
				RuntimePath:       "/src/runtime",
				CrossCompilerPath: "/home/tester/cross",
				QemuBinary:        "qemu-system-x86_64",
				DockerImage:       "runtimejs",
				BridgeInterface:   "br1",
				ServePort:         8077,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			actual, err := config.Load(writeConfig(t, tt.content))
			require.NoError(t, err)

			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), config.FileName)

		_, err := config.Load(path)
		require.ErrorIs(t, err, config.ErrNoConfig)
		assert.ErrorContains(t, err, "runtime initconfig")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "RuntimePath = "))
		require.ErrorIs(t, err, config.ErrConfigParse)
	})
}

func TestInit(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	path := filepath.Join(t.TempDir(), config.FileName)

	require.NoError(t, config.Init(path, false))

	settings, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/runtime", settings.RuntimePath)
	assert.Equal(t, "/home/tester/cross", settings.CrossCompilerPath)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "${HOME}/runtime", "written unexpanded")

	err = config.Init(path, false)
	require.ErrorIs(t, err, config.ErrConfigExists)
	assert.ErrorContains(t, err, "--force")

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	require.NoError(t, config.Init(path, true))

	_, err = config.Load(path)
	require.NoError(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.runtimerc.toml", path)
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "/home/tester/a/home/tester", config.ExpandHome("${HOME}/a${HOME}"))
	assert.Equal(t, "/opt/cross", config.ExpandHome("/opt/cross"))
	assert.Equal(t, "$HOME/x", config.ExpandHome("$HOME/x"))
}

func TestEditSpec(t *testing.T) {
	stdio := supervisor.IO{Stdin: os.Stdin, Stdout: os.Stdout}

	t.Setenv("EDITOR", "")
	assert.Equal(t, supervisor.Spec{
		IO:   stdio,
		Name: "vi",
		Args: []string{"/home/tester/.runtimerc.toml"},
	}, config.EditSpec("/home/tester/.runtimerc.toml", stdio))

	t.Setenv("EDITOR", "nano")
	assert.Equal(t, "nano", config.EditSpec("x", stdio).Name)
}
