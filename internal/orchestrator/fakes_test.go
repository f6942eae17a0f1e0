// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package orchestrator_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/runtimejs/runtimectl/internal/artifact"
	"github.com/runtimejs/runtimectl/internal/config"
	"github.com/runtimejs/runtimectl/internal/fetch"
	"github.com/runtimejs/runtimectl/internal/orchestrator"
	"github.com/runtimejs/runtimectl/internal/server"
	"github.com/runtimejs/runtimectl/internal/supervisor"
	"github.com/stretchr/testify/require"
)

var (
	testNow        = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testKernelTime = testNow.Add(-5 * time.Minute)
	testInitrdTime = testNow.Add(-2 * time.Hour)
)

type fakeRunner struct {
	mu        sync.Mutex
	specs     []supervisor.Spec
	exitCodes map[string]int
	err       error
}

func (r *fakeRunner) Run(_ context.Context, spec supervisor.Spec) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.specs = append(r.specs, spec)

	return r.exitCodes[spec.Name], r.err
}

func (r *fakeRunner) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var names []string
	for _, spec := range r.specs {
		names = append(names, spec.Name)
	}

	return names
}

type fakeFetcher struct {
	calls int
	host  string
	port  uint16
	err   error
}

func (f *fakeFetcher) Fetch(
	_ context.Context,
	host string,
	port uint16,
	kernelDest string,
	initrdDest string,
) (fetch.Result, error) {
	f.calls++
	f.host = host
	f.port = port

	if f.err != nil {
		return fetch.Result{}, f.err
	}

	for _, dest := range []string{kernelDest, initrdDest} {
		err := os.WriteFile(dest, []byte("remote"), 0o600)
		if err != nil {
			return fetch.Result{}, err
		}
	}

	return fetch.Result{
		Kernel: fetch.DownloadResult{Name: "kernel", Path: kernelDest, Bytes: 6},
		Initrd: fetch.DownloadResult{Name: "initrd", Path: initrdDest, Bytes: 6},
	}, nil
}

type fakeServer struct {
	calls int
	cfg   server.Config
	err   error
}

func (s *fakeServer) serve(_ context.Context, cfg server.Config) error {
	s.calls++
	s.cfg = cfg

	return s.err
}

type fakeBridges struct {
	checked []string
	err     error
}

func (b *fakeBridges) CheckBridge(name string) error {
	b.checked = append(b.checked, name)
	return b.err
}

type env struct {
	paths    artifact.Paths
	runner   *fakeRunner
	fetcher  *fakeFetcher
	server   *fakeServer
	bridges  *fakeBridges
	stdout   *bytes.Buffer
	logs     *bytes.Buffer
	kvm      bool
	settings config.Settings
}

func writeFile(t *testing.T, path string, mtime time.Time) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	if !mtime.IsZero() {
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
}

// newEnv creates a runtime source tree with built kernel and initrd.
func newEnv(t *testing.T) *env {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "SConstruct"), time.Time{})

	paths, err := artifact.NewPaths(dir)
	require.NoError(t, err)

	writeFile(t, paths.Kernel, testKernelTime)
	writeFile(t, paths.Initrd, testInitrdTime)

	settings := config.Settings{
		RuntimePath:       dir,
		CrossCompilerPath: "/opt/cross",
		QemuBinary:        "qemu-system-x86_64",
		DockerImage:       "runtimejs",
		BridgeInterface:   "br0",
		ServePort:         8077,
	}

	return &env{
		paths:    paths,
		runner:   &fakeRunner{},
		fetcher:  &fakeFetcher{},
		server:   &fakeServer{},
		bridges:  &fakeBridges{},
		stdout:   &bytes.Buffer{},
		logs:     &bytes.Buffer{},
		kvm:      true,
		settings: settings,
	}
}

func (e *env) orchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(orchestrator.Config{
		Settings: e.settings,
		Paths:    e.paths,
		Runner:   e.runner,
		Fetcher:  e.fetcher,
		Serve:    e.server.serve,
		Bridges:  e.bridges,
		LookPath: func(name string) (string, error) {
			return "/usr/bin/" + name, nil
		},
		KVMAvailable: func() bool { return e.kvm },
		Stdio:        supervisor.IO{Stdout: e.stdout, Stderr: io.Discard},
		Logger:       slog.New(slog.NewTextHandler(e.logs, nil)),
		Now:          func() time.Time { return testNow },
	})
}
