// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"fmt"
	"io"
	"os/exec"
)

// Runtime executes container images for extraction backends. Docker and
// podman are interchangeable here; detection prefers docker.
type Runtime interface {
	// Name returns the runtime binary name.
	Name() string

	// HasImage reports whether the named image exists locally.
	HasImage(image string) error

	// Pipe runs the image once, streaming stdin through the container to
	// stdout.
	Pipe(image string, stdin io.Reader, stdout io.Writer) error
}

// commandRunner abstracts process execution so tests can avoid spawning
// real containers.
type commandRunner interface {
	look(bin string) error
	silent(bin string, args ...string) error
	piped(bin string, args []string, stdin io.Reader, stdout io.Writer) error
}

type execRunner struct{}

func (execRunner) look(bin string) error {
	_, err := exec.LookPath(bin)
	return err
}

func (execRunner) silent(bin string, args ...string) error {
	return exec.Command(bin, args...).Run()
}

func (execRunner) piped(bin string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(bin, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// containerRuntime implements Runtime over a container binary. The two
// supported binaries differ only in the image-existence subcommand.
type containerRuntime struct {
	bin       string
	imageArgs []string
	run       commandRunner
}

func (c *containerRuntime) Name() string { return c.bin }

func (c *containerRuntime) available() bool {
	if err := c.run.look(c.bin); err != nil {
		return false
	}
	return c.run.silent(c.bin, "info") == nil
}

func (c *containerRuntime) HasImage(image string) error {
	args := append(append([]string{}, c.imageArgs...), image)
	if err := c.run.silent(c.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, c.bin, err)
	}
	return nil
}

func (c *containerRuntime) Pipe(image string, stdin io.Reader, stdout io.Writer) error {
	if err := c.run.piped(c.bin, []string{"run", "--rm", "-i", image}, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", c.bin, image, err)
	}
	return nil
}

// DetectRuntime finds a working container runtime, preferring docker and
// falling back to podman.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(execRunner{})
}

func detectRuntime(run commandRunner) (Runtime, error) {
	candidates := []*containerRuntime{
		{bin: "docker", imageArgs: []string{"image", "inspect"}, run: run},
		{bin: "podman", imageArgs: []string{"image", "exists"}, run: run},
	}
	for _, c := range candidates {
		if c.available() {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: neither docker nor podman found or operational")
}
