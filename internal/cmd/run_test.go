// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runtimejs/runtimectl/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	exitCode int
	stdout   string
	stderr   string
}

func run(t *testing.T, ctx context.Context, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer

	exitCode := cmd.Run(ctx, args, cmd.IO{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	})

	return result{
		exitCode: exitCode,
		stdout:   stdout.String(),
		stderr:   stderr.String(),
	}
}

// runtimeTree creates a runtime source tree with kernel and initrd and a
// config file pointing to it. It returns the config file path.
func runtimeTree(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	bootDir := filepath.Join(dir, "disk", "boot")
	require.NoError(t, os.MkdirAll(bootDir, 0o755))

	for _, path := range []string{
		filepath.Join(dir, "SConstruct"),
		filepath.Join(bootDir, "runtime"),
		filepath.Join(bootDir, "initrd"),
	} {
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}

	configPath := filepath.Join(t.TempDir(), ".runtimerc.toml")
	content := "RuntimePath = \"" + dir + "\"\nCrossCompilerPath = \"/opt/cross\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	return configPath, dir
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name             string
		args             []string
		expectedExitCode int
		expectedStdout   string
		expectedStderr   string
	}{
		{
			name:             "no command",
			expectedExitCode: 1,
			expectedStdout:   "Usage:",
			expectedStderr:   "no command given",
		},
		{
			name:             "help",
			args:             []string{"--help"},
			expectedExitCode: 0,
			expectedStdout:   "initconfig",
		},
		{
			name:             "unknown command",
			args:             []string{"launch"},
			expectedExitCode: 1,
			expectedStderr:   `unknown command "launch"`,
		},
		{
			name:             "unknown flag",
			args:             []string{"start", "--bogus"},
			expectedExitCode: 1,
			expectedStderr:   "--bogus",
		},
		{
			name:             "append without value",
			args:             []string{"start", "--append"},
			expectedExitCode: 1,
			expectedStderr:   "append",
		},
		{
			name:             "invalid network mode",
			args:             []string{"start", "--net=tap"},
			expectedExitCode: 1,
			expectedStderr:   "unknown network mode",
		},
		{
			name:             "port out of range",
			args:             []string{"start", "--host=example.com", "--port=70000"},
			expectedExitCode: 1,
			expectedStderr:   "--port",
		},
		{
			name:             "port not a number",
			args:             []string{"start", "--host=example.com", "--port=http"},
			expectedExitCode: 1,
			expectedStderr:   "--port",
		},
		{
			name:             "version",
			args:             []string{"version"},
			expectedExitCode: 0,
			expectedStdout:   "Version:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, t.Context(), tt.args...)

			assert.Equal(t, tt.expectedExitCode, res.exitCode)
			assert.Contains(t, res.stdout, tt.expectedStdout)
			assert.Contains(t, res.stderr, tt.expectedStderr)
		})
	}
}

func TestRun_RemoteWithLocalBuild(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")

	res := run(t, t.Context(),
		"start", "--host=example.com", "--build", "--config", missing)

	assert.Equal(t, 1, res.exitCode)
	assert.Contains(t, res.stderr, "current build is local")
	assert.NotContains(t, res.stderr, "initconfig", "config not loaded")
	assert.Empty(t, res.stdout)
}

func TestRun_EmptyAppend(t *testing.T) {
	configPath, _ := runtimeTree(t)

	res := run(t, t.Context(), "start", "--append=", "--dry", "--config", configPath)

	assert.Equal(t, 1, res.exitCode)
	assert.Contains(t, res.stderr, "kernel command line must not be empty")
}

func TestRun_MissingConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")

	for _, args := range [][]string{
		{"start"},
		{"start", "--docker", "--build"},
		{"build"},
		{"initrd", "--docker"},
		{"serve"},
		{"serve", "--docker", "--build"},
		{"log"},
		{"netdump"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			res := run(t, t.Context(), append(args, "--config", missing)...)

			assert.Equal(t, 1, res.exitCode)
			assert.Contains(t, res.stderr, "runtime initconfig")
		})
	}
}

func TestRun_InitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".runtimerc.toml")

	res := run(t, t.Context(), "initconfig", "--config", path)
	require.Equal(t, 0, res.exitCode, res.stderr)
	assert.Contains(t, res.stdout, "created \""+path+"\" config file")
	assert.FileExists(t, path)

	res = run(t, t.Context(), "initconfig", "--config", path)
	assert.Equal(t, 1, res.exitCode)
	assert.Contains(t, res.stderr, "use --force to overwrite")

	res = run(t, t.Context(), "initconfig", "--force", "--config", path)
	assert.Equal(t, 0, res.exitCode, res.stderr)
}

func TestRun_StartDry(t *testing.T) {
	configPath, dir := runtimeTree(t)

	res := run(t, t.Context(),
		"start", "--net", "--kvm", "--dry", "--config", configPath)
	require.Equal(t, 0, res.exitCode, res.stderr)

	kernel := filepath.Join(dir, "disk", "boot", "runtime")
	initrd := filepath.Join(dir, "disk", "boot", "initrd")

	assert.Contains(t, res.stdout, " --- starting qemu --- ")
	assert.Contains(t, res.stdout, "kernel built ")
	assert.Contains(t, res.stdout,
		"qemu-system-x86_64 -m 512 -smp 1 -s -kernel "+kernel+" -initrd "+initrd+
			" -net nic,model=virtio,macaddr=1a:46:0b:ca:bc:7c"+
			" -net user,net=192.168.76.0/24,dhcpstart=192.168.76.9,"+
			"hostfwd=udp::9000-:9000,hostfwd=tcp::9000-:9000"+
			" -enable-kvm -no-kvm-irqchip -serial stdio\n",
	)
}

func TestRun_StartMissingKernel(t *testing.T) {
	configPath, dir := runtimeTree(t)
	kernel := filepath.Join(dir, "disk", "boot", "runtime")
	require.NoError(t, os.Remove(kernel))

	res := run(t, t.Context(), "start", "--dry", "--config", configPath)

	assert.Equal(t, 1, res.exitCode)
	assert.Contains(t, res.stderr, kernel)
	assert.NotContains(t, res.stdout, "starting qemu")
}

func TestRun_LogMissing(t *testing.T) {
	configPath, dir := runtimeTree(t)

	res := run(t, t.Context(), "log", "--config", configPath)

	assert.Equal(t, 1, res.exitCode)
	assert.Contains(t, res.stderr, filepath.Join(dir, "serial.txt"))
}

func TestRun_Interrupted(t *testing.T) {
	configPath, _ := runtimeTree(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	res := run(t, ctx, "start", "--dry", "--config", configPath)

	assert.Equal(t, 0, res.exitCode)
	assert.Contains(t, res.stdout, " --- interrupted --- ")
	assert.NotContains(t, res.stdout, "starting qemu")
}
