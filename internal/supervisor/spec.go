// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// IO provides input and output streams for a command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Spec describes an external command to run.
type Spec struct {
	IO

	// Name is the program to run. It is looked up in PATH if it does not
	// contain a path separator.
	Name string

	// Args are passed to the program.
	Args []string

	// Dir is the working directory. Empty means the current one.
	Dir string

	// Env holds additional environment variables in the form "key=value".
	// They take precedence over the inherited environment.
	Env []string
}

// String returns the command line in a form that can be pasted into a shell.
func (s Spec) String() string {
	return QuoteArgs(append([]string{s.Name}, s.Args...)...)
}

func (s Spec) command() (*exec.Cmd, error) {
	if s.Name == "" {
		return nil, ErrEmptyCommand
	}

	cmd := exec.Command(s.Name, s.Args...)
	cmd.Dir = s.Dir

	if len(s.Env) > 0 {
		cmd.Env = append(os.Environ(), s.Env...)
	}

	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	return cmd, nil
}

// shellSpecial are the characters that make a word need quoting.
const shellSpecial = " \t\n\"'\\$`;&|<>()*?"

// QuoteArgs joins the words with spaces. Empty words and words containing
// shell special characters are quoted.
func QuoteArgs(words ...string) string {
	quoted := make([]string, 0, len(words))

	for _, word := range words {
		if word == "" || strings.ContainsAny(word, shellSpecial) {
			word = strconv.Quote(word)
		}

		quoted = append(quoted, word)
	}

	return strings.Join(quoted, " ")
}

// LookPath searches for the given executable like [exec.LookPath] does. A
// missing program is reported as [ErrExecutableNotFound].
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, name)
	}

	return path, nil
}
