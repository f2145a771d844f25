package docker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommandCapturesOutput(t *testing.T) {
	stdout, stderr, err := RunCommand(context.Background(), "echo", "hello")

	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout)
	assert.Empty(t, stderr)
}

func TestRunCommandReportsFailure(t *testing.T) {
	_, _, err := RunCommand(context.Background(), "false")
	assert.Error(t, err)
}

func TestRunCommandHonorsDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := RunCommand(ctx, "sleep", "2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestRuntimePinnedByConfig(t *testing.T) {
	client := NewClient("podman")

	runtimeBin, err := client.Runtime(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "podman", runtimeBin)
}
