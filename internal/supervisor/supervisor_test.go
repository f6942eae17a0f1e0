// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor_test

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/runtimejs/runtimectl/internal/supervisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 5 * time.Second

func waitDone(t *testing.T, proc *supervisor.Process) {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), waitTimeout)
	defer cancel()

	_, err := proc.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("process %d did not exit in time", proc.Pid())
	}
}

func TestSupervisor_Spawn(t *testing.T) {
	tests := []struct {
		name         string
		spec         supervisor.Spec
		expectedCode int
	}{
		{
			name:         "success",
			spec:         supervisor.Spec{Name: "true"},
			expectedCode: 0,
		},
		{
			name: "non-zero exit",
			spec: supervisor.Spec{
				Name: "sh",
				Args: []string{"-c", "exit 3"},
			},
			expectedCode: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sup := supervisor.New(nil)

			var calls atomic.Int32

			codes := make(chan int, 2)

			proc, err := sup.Spawn(tt.spec, func(code int) {
				calls.Add(1)
				codes <- code
			})
			require.NoError(t, err)

			waitDone(t, proc)

			select {
			case code := <-codes:
				assert.Equal(t, tt.expectedCode, code)
			case <-time.After(waitTimeout):
				t.Fatal("exit callback not called")
			}

			assert.Equal(t, int32(1), calls.Load(), "callback called once")
			assert.Zero(t, sup.Len(), "process should be untracked")
		})
	}
}

func TestSupervisor_SpawnFailure(t *testing.T) {
	sup := supervisor.New(nil)

	_, err := sup.Spawn(supervisor.Spec{Name: "/nonexistent/binary"}, nil)
	require.Error(t, err)

	_, err = sup.Spawn(supervisor.Spec{}, nil)
	require.ErrorIs(t, err, supervisor.ErrEmptyCommand)

	assert.Zero(t, sup.Len())
}

func TestSupervisor_Run(t *testing.T) {
	sup := supervisor.New(nil)

	var stdout bytes.Buffer

	code, err := sup.Run(t.Context(), supervisor.Spec{
		IO:   supervisor.IO{Stdout: &stdout},
		Name: "sh",
		Args: []string{"-c", "pwd; exit 2"},
		Dir:  "/",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.Equal(t, "/\n", stdout.String())
}

func TestSupervisor_RunEnv(t *testing.T) {
	t.Setenv("SUPERVISOR_INHERITED", "kept")

	sup := supervisor.New(nil)

	var stdout bytes.Buffer

	code, err := sup.Run(t.Context(), supervisor.Spec{
		IO:   supervisor.IO{Stdout: &stdout},
		Name: "sh",
		Args: []string{"-c", `echo "$SUPERVISOR_INHERITED $SUPERVISOR_EXTRA"`},
		Env:  []string{"SUPERVISOR_EXTRA=added"},
	})
	require.NoError(t, err)
	assert.Zero(t, code)
	assert.Equal(t, "kept added\n", stdout.String())
}

func TestSupervisor_RunContextDone(t *testing.T) {
	sup := supervisor.New(nil, supervisor.WithTermSignal(syscall.SIGTERM))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	proc, err := sup.Spawn(supervisor.Spec{
		Name: "sleep",
		Args: []string{"30"},
	}, nil)
	require.NoError(t, err)

	_, err = proc.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, sup.Len(), "process still tracked")

	assert.Equal(t, 1, sup.TerminateAll())
	waitDone(t, proc)
}

func TestSupervisor_TerminateAll(t *testing.T) {
	// SIGINT might be ignored by processes started in the background, so
	// use SIGTERM for testing.
	sup := supervisor.New(nil, supervisor.WithTermSignal(syscall.SIGTERM))

	procs := make([]*supervisor.Process, 0, 3)
	codes := make(chan int, 3)

	for range 3 {
		proc, err := sup.Spawn(supervisor.Spec{
			Name: "sleep",
			Args: []string{"30"},
		}, func(code int) { codes <- code })
		require.NoError(t, err)

		procs = append(procs, proc)
	}

	require.Equal(t, 3, sup.Len())

	assert.Equal(t, 3, sup.TerminateAll(), "all processes signaled")

	for _, proc := range procs {
		waitDone(t, proc)
	}

	for range 3 {
		assert.Equal(t, -1, <-codes, "terminated by signal")
	}

	assert.Zero(t, sup.Len())
	assert.Zero(t, sup.TerminateAll(), "nothing left to terminate")
}

func TestSpec_String(t *testing.T) {
	spec := supervisor.Spec{
		Name: "qemu-system-x86_64",
		Args: []string{"-append", "console=ttyS0 quiet", "-s"},
	}

	assert.Equal(t,
		`qemu-system-x86_64 -append "console=ttyS0 quiet" -s`,
		spec.String())
}

func TestQuoteArgs(t *testing.T) {
	tests := []struct {
		name     string
		words    []string
		expected string
	}{
		{
			name:     "plain",
			words:    []string{"scons", "-j4"},
			expected: "scons -j4",
		},
		{
			name:     "empty word",
			words:    []string{"echo", ""},
			expected: `echo ""`,
		},
		{
			name:     "white space",
			words:    []string{"-append", "console=ttyS0 quiet"},
			expected: `-append "console=ttyS0 quiet"`,
		},
		{
			name:     "shell operators",
			words:    []string{"a;b", "c|d", "e&f", "g>h", "(i)"},
			expected: `"a;b" "c|d" "e&f" "g>h" "(i)"`,
		},
		{
			name:     "globs and expansion",
			words:    []string{"*.pcap", "x?", "$HOME", "`id`"},
			expected: `"*.pcap" "x?" "$HOME" "` + "`id`" + `"`,
		},
		{
			name:     "quotes",
			words:    []string{`say "hi"`},
			expected: `"say \"hi\""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, supervisor.QuoteArgs(tt.words...))
		})
	}
}

func TestLookPath(t *testing.T) {
	_, err := supervisor.LookPath("surely-not-installed-anywhere")
	require.ErrorIs(t, err, supervisor.ErrExecutableNotFound)

	path, err := supervisor.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}
