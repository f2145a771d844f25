// internal/docker/executor.go
package docker

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const defaultTimeout = 30 * time.Second

// Client invokes the container runtime CLI (docker or podman) to read
// container logs and list running containers. All reads are stateless and
// side-effect free.
type Client struct {
	// runtime pins the CLI binary; empty means auto-detect per call.
	runtime string
}

// NewClient returns a Client. Pass an empty runtime to auto-detect
// docker/podman on each call.
func NewClient(runtime string) *Client {
	return &Client{runtime: runtime}
}

// Runtime returns the CLI binary to use, auto-detecting docker then podman
// when none is configured.
func (c *Client) Runtime(ctx context.Context) (string, error) {
	if c.runtime != "" {
		return c.runtime, nil
	}

	// Try Docker first
	dockerOut, _, dockerErr := RunCommand(ctx, "docker", "version", "--format", "{{.Server.Version}}")
	if dockerErr == nil && dockerOut != "" {
		return "docker", nil
	}

	// If Docker failed, try Podman
	podmanOut, _, podmanErr := RunCommand(ctx, "podman", "version", "--format", "{{.Version}}")
	if podmanErr == nil && podmanOut != "" {
		return "podman", nil
	}

	log.Errorf("Could not determine container runtime (docker/podman). Docker error: %v, Podman error: %v",
		dockerErr, podmanErr)
	return "", fmt.Errorf("no supported container runtime (docker/podman) found")
}

// ContainerLogs fetches recent log lines from a container. A non-zero tail
// bounds the window; timestamps asks the runtime to prefix each line with
// an RFC3339Nano timestamp.
func (c *Client) ContainerLogs(ctx context.Context, name string, tail int, timestamps bool) (string, error) {
	runtimeBin, err := c.Runtime(ctx)
	if err != nil {
		return "", err
	}

	args := []string{"logs"}
	if tail > 0 {
		args = append(args, "--tail", strconv.Itoa(tail))
	}
	if timestamps {
		args = append(args, "--timestamps")
	}
	args = append(args, name)

	stdout, stderr, err := RunCommand(ctx, runtimeBin, args...)
	if err != nil {
		return "", fmt.Errorf("%s logs failed for container '%s': %w", runtimeBin, name, err)
	}
	if stderr != "" {
		// docker logs interleaves the container's stderr stream here; it is
		// operator context, not feed data.
		log.Debug("Container logs stderr", "container", name, "stderr_len", len(stderr))
	}
	return stdout, nil
}

// ListContainers returns a table of running containers (name, image,
// status) for diagnostics.
func (c *Client) ListContainers(ctx context.Context) (string, error) {
	runtimeBin, err := c.Runtime(ctx)
	if err != nil {
		return "", err
	}

	stdout, _, err := RunCommand(ctx, runtimeBin, "ps", "--format", "table {{.Names}}\t{{.Image}}\t{{.Status}}")
	if err != nil {
		return "", fmt.Errorf("%s ps failed: %w", runtimeBin, err)
	}
	return stdout, nil
}

// RunCommand executes a command and returns stdout, stderr, and error.
// A default timeout is applied when the context carries no deadline.
func RunCommand(ctx context.Context, command string, args ...string) (stdout string, stderr string, err error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}

	commandString := fmt.Sprintf("%s %s", command, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, command, args...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	log.Debug("Executing command", "command", commandString)

	startTime := time.Now()
	err = cmd.Run()
	duration := time.Since(startTime)

	stdout = outBuf.String()
	stderr = errBuf.String()

	if ctx.Err() == context.DeadlineExceeded {
		log.Warn("Command timed out",
			"duration", duration,
			"command", commandString,
		)
		return stdout, stderr, fmt.Errorf("command '%s' timed out after %s: %w", commandString, duration, ctx.Err())
	}

	if err != nil {
		log.Debug("Command failed",
			"duration", duration,
			"command", commandString,
			"error", err,
			"stderr_len", len(stderr),
		)
		return stdout, stderr, err
	}

	log.Debug("Command successful",
		"duration", duration,
		"command", commandString,
		"stdout_len", len(stdout),
		"stderr_len", len(stderr),
	)
	return stdout, stderr, nil
}
