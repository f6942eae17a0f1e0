// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runtimejs/runtimectl/internal/supervisor"
)

const (
	// DefaultDockerImage is the image used for container builds.
	DefaultDockerImage = "runtimejs"

	buildFile       = "SConstruct"
	buildProgram    = "scons"
	initrdProgram   = "./mkinitrd"
	dockerProgram   = "docker"
	containerMount  = "/mnt"
	initrdImage     = "disk/boot/initrd"
	initrdSourceDir = "initrd"
)

// Config defines where and how the runtime is built.
type Config struct {
	// RuntimeDir is the runtime source root. Commands run in there.
	RuntimeDir string

	// CrossCompilerDir is the root of the cross compiler installation. Its
	// "bin" directory is prepended to PATH for native builds. Optional.
	CrossCompilerDir string

	// DockerImage is the image used if Docker is set. Defaults to
	// [DefaultDockerImage].
	DockerImage string

	// Docker wraps the commands in a docker container.
	Docker bool
}

// Validate checks that RuntimeDir is a runtime source tree.
func (c Config) Validate() error {
	info, err := os.Stat(c.RuntimeDir)
	if err == nil && !info.IsDir() {
		err = errNotADirectory
	}

	if err == nil {
		_, err = os.Stat(filepath.Join(c.RuntimeDir, buildFile))
	}

	if err != nil {
		return fmt.Errorf(
			"%w at %q, check config file: %w",
			ErrRuntimeDirNotFound,
			c.RuntimeDir,
			err,
		)
	}

	return nil
}

// BuildSpec returns the command that builds the runtime kernel.
func (c Config) BuildSpec(stdio supervisor.IO) supervisor.Spec {
	spec := c.spec(stdio, buildProgram)

	if !c.Docker && c.CrossCompilerDir != "" {
		binDir := filepath.Join(c.CrossCompilerDir, "bin")
		spec.Env = []string{"PATH=" + PrependPath(os.Getenv("PATH"), binDir)}
	}

	return spec
}

// InitrdSpec returns the command that packs the initrd image.
func (c Config) InitrdSpec(stdio supervisor.IO) supervisor.Spec {
	return c.spec(stdio, initrdProgram, "-c", initrdImage, initrdSourceDir)
}

func (c Config) spec(stdio supervisor.IO, name string, args ...string) supervisor.Spec {
	if c.Docker {
		args = append(c.dockerArgs(), append([]string{name}, args...)...)
		name = dockerProgram
	}

	return supervisor.Spec{
		IO:   stdio,
		Name: name,
		Args: args,
		Dir:  c.RuntimeDir,
	}
}

// dockerArgs returns the "docker run" arguments up to and including the image.
func (c Config) dockerArgs() []string {
	image := c.DockerImage
	if image == "" {
		image = DefaultDockerImage
	}

	return []string{
		"run",
		"--rm",
		"-w", containerMount,
		"-v", c.RuntimeDir + ":" + containerMount + ":rw",
		image,
	}
}

// PrependPath returns the PATH list with dir put in front. An existing entry
// equal to dir is dropped.
func PrependPath(pathList, dir string) string {
	entries := []string{dir}

	for entry := range strings.SplitSeq(pathList, string(os.PathListSeparator)) {
		if entry != "" && entry != dir {
			entries = append(entries, entry)
		}
	}

	return strings.Join(entries, string(os.PathListSeparator))
}
