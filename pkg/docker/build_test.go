package docker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stubTool writes an executable shell script standing in for the build tool.
func stubTool(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-build-tool")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestBuildSuccess(t *testing.T) {
	tool := stubTool(t, `echo "STEP 1/1: FROM scratch"; echo "built ok"`)

	result := Build(context.Background(), "FROM scratch\n", BuildOptions{
		Tool:    tool,
		Tag:     "mirror-test:stub",
		Timeout: 30 * time.Second,
	})

	require.Equal(t, 0, result.ExitCode)
	require.False(t, result.TimedOut)
	require.Contains(t, result.Stdout, "built ok")
	require.Contains(t, result.Command, "-t mirror-test:stub")
}

func TestBuildFailureCapturesStderr(t *testing.T) {
	tool := stubTool(t, `echo "partial output"; echo "Error: no route to mirror" >&2; exit 3`)

	result := Build(context.Background(), "FROM scratch\n", BuildOptions{
		Tool:    tool,
		Tag:     "mirror-test:stub",
		Timeout: 30 * time.Second,
	})

	require.Equal(t, 3, result.ExitCode)
	require.Contains(t, result.Stdout, "partial output")
	require.Contains(t, result.Stderr, "no route to mirror")
}

func TestBuildTimeout(t *testing.T) {
	tool := stubTool(t, `sleep 60`)

	start := time.Now()
	result := Build(context.Background(), "FROM scratch\n", BuildOptions{
		Tool:    tool,
		Tag:     "mirror-test:stub",
		Timeout: 1 * time.Second,
	})
	elapsed := time.Since(start)

	require.True(t, result.TimedOut)
	require.Equal(t, TimeoutExitCode, result.ExitCode)
	require.Contains(t, result.Stderr, "timeout after 1 seconds")
	require.Less(t, elapsed, 10*time.Second)
}

func TestBuildToolMissing(t *testing.T) {
	result := Build(context.Background(), "FROM scratch\n", BuildOptions{
		Tool:    "/nonexistent/build-tool",
		Tag:     "mirror-test:stub",
		Timeout: 30 * time.Second,
	})

	require.Equal(t, toolErrorExitCode, result.ExitCode)
	require.NotEmpty(t, result.Stderr)
}

func TestBuildNoCacheFlag(t *testing.T) {
	tool := stubTool(t, `echo "$@"`)

	result := Build(context.Background(), "FROM scratch\n", BuildOptions{
		Tool:    tool,
		Tag:     "mirror-test:stub",
		NoCache: true,
		Timeout: 30 * time.Second,
	})

	require.Equal(t, 0, result.ExitCode)
	require.Contains(t, result.Stdout, "--no-cache")
}

func TestBuildWritesDockerfile(t *testing.T) {
	// The stub receives -f <path>; cat it back to prove the script text
	// reached the build context.
	tool := stubTool(t, `while [ "$1" != "-f" ]; do shift; done; cat "$2"`)

	result := Build(context.Background(), "FROM alpine:3.19\nRUN apk update\n", BuildOptions{
		Tool:    tool,
		Tag:     "mirror-test:stub",
		Timeout: 30 * time.Second,
	})

	require.Equal(t, 0, result.ExitCode)
	require.Contains(t, result.Stdout, "FROM alpine:3.19")
	require.Contains(t, result.Stdout, "RUN apk update")
}

func TestSplitTool(t *testing.T) {
	argv, err := splitTool("docker buildx")
	require.NoError(t, err)
	require.Equal(t, []string{"docker", "buildx"}, argv)

	argv, err = splitTool("")
	require.NoError(t, err)
	require.Equal(t, []string{"podman"}, argv)

	_, err = splitTool(`podman "unterminated`)
	require.Error(t, err)
}
