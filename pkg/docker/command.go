package docker

import (
	"fmt"

	"github.com/google/shlex"

	"github.com/mirror-tools/mirror-test/pkg/global"
)

// splitTool turns the configured build-tool string into argv form. The tool
// may carry its own arguments ("docker buildx", "sudo podman").
func splitTool(tool string) ([]string, error) {
	if tool == "" {
		tool = global.DefaultBuildTool
	}
	parts, err := shlex.Split(tool)
	if err != nil {
		return nil, fmt.Errorf("failed to parse build tool %q: %w", tool, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty build tool command")
	}
	return parts, nil
}
