package docker

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

// RemoveImage force-removes an image by tag or ID.
func RemoveImage(tool, tag string) error {
	out, err := run(tool, "rmi", "-f", tag)
	if err != nil {
		return fmt.Errorf("failed to remove image %s: %s", tag, strings.TrimSpace(out))
	}
	return nil
}

// PruneDangling removes untagged layers left behind by failed builds. The
// tagged image of a failed build is deliberately left for inspection.
func PruneDangling(tool string) error {
	out, err := run(tool, "image", "prune", "-f")
	if err != nil {
		return fmt.Errorf("failed to prune dangling images: %s", strings.TrimSpace(out))
	}
	return nil
}

// ListImages returns the IDs of images matching a reference filter, e.g.
// "mirror-test:*".
func ListImages(tool, reference string) ([]string, error) {
	out, err := run(tool, "images", "-q", "--filter", "reference="+reference)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %s", strings.TrimSpace(out))
	}
	var ids []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ids = append(ids, line)
		}
	}
	return ids, nil
}

func run(tool string, args ...string) (string, error) {
	argv, err := splitTool(tool)
	if err != nil {
		return "", err
	}
	cmd := exec.Command(argv[0], append(argv[1:], args...)...)
	console.Debug("$ " + strings.Join(cmd.Args, " "))
	out, err := cmd.CombinedOutput()
	return string(out), err
}
