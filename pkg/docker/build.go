// Package docker runs the container build tool (podman or docker) as a child
// process and captures its outcome.
package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

// TimeoutExitCode is the sentinel return code recorded when a build hits its
// wall-clock timeout, matching the coreutils timeout(1) convention.
const TimeoutExitCode = 124

// toolErrorExitCode is recorded when the build tool could not be invoked at
// all (missing binary, permission denied).
const toolErrorExitCode = 127

type BuildOptions struct {
	// Tool is the build command, e.g. "podman" or "docker buildx".
	Tool    string
	Tag     string
	NoCache bool
	Timeout time.Duration
}

// BuildResult is the raw outcome of one build invocation. Both zero and
// non-zero exit codes are captured; once invocation begins there is no
// "did not run" state.
type BuildResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	Command  string
}

// Build writes the script to a fresh scratch directory and runs
// `<tool> build [--no-cache] -f <script> -t <tag> <dir>` under a hard
// wall-clock timeout. Every failure mode is folded into the result so the
// caller always has something to record.
func Build(ctx context.Context, dockerfileContents string, opts BuildOptions) *BuildResult {
	result := &BuildResult{}

	tool, err := splitTool(opts.Tool)
	if err != nil {
		result.ExitCode = toolErrorExitCode
		result.Stderr = err.Error()
		return result
	}

	scratchDir, err := os.MkdirTemp("", "mirror-test-build-")
	if err != nil {
		result.ExitCode = toolErrorExitCode
		result.Stderr = fmt.Sprintf("failed to create build directory: %s", err)
		return result
	}
	defer os.RemoveAll(scratchDir)

	dockerfilePath := filepath.Join(scratchDir, "Dockerfile")
	if err := os.WriteFile(dockerfilePath, []byte(dockerfileContents), 0o644); err != nil {
		result.ExitCode = toolErrorExitCode
		result.Stderr = fmt.Sprintf("failed to write Dockerfile: %s", err)
		return result
	}

	args := append(tool[1:], "build")
	if opts.NoCache {
		args = append(args, "--no-cache")
	}
	args = append(args, "-f", dockerfilePath, "-t", opts.Tag, scratchDir)

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool[0], args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// The build tool forks helpers; put the whole tree in its own process
	// group so a timeout kills all of it, not just the direct child.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}
	cmd.WaitDelay = 5 * time.Second

	result.Command = strings.Join(cmd.Args, " ")
	console.Debug("$ " + result.Command)

	runErr := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.TimedOut = true
		result.ExitCode = TimeoutExitCode
		msg := fmt.Sprintf("build timeout after %d seconds", int(opts.Timeout.Seconds()))
		if result.Stderr != "" && !strings.HasSuffix(result.Stderr, "\n") {
			result.Stderr += "\n"
		}
		result.Stderr += msg
	case runErr == nil:
		result.ExitCode = 0
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = toolErrorExitCode
			if result.Stderr != "" && !strings.HasSuffix(result.Stderr, "\n") {
				result.Stderr += "\n"
			}
			result.Stderr += runErr.Error()
		}
	}

	return result
}
