package cli

import (
	"github.com/spf13/cobra"

	"github.com/mirror-tools/mirror-test/pkg/docker"
	"github.com/mirror-tools/mirror-test/pkg/global"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

func newCleanupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove leftover test images and dangling build layers",
		RunE:  cleanup,
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVar(&buildToolFlag, "build-tool", "", "Container build tool (default "+global.DefaultBuildTool+")")

	return cmd
}

func cleanup(cmd *cobra.Command, args []string) error {
	tool := buildToolFlag
	if tool == "" {
		tool = global.DefaultBuildTool
	}

	images, err := docker.ListImages(tool, global.ImagePrefix)
	if err != nil {
		return err
	}

	for _, image := range images {
		if err := docker.RemoveImage(tool, image); err != nil {
			console.Warnf("%s", err)
			continue
		}
		console.Infof("Removed %s", image)
	}
	if len(images) == 0 {
		console.Info("No test images to remove")
	}

	return docker.PruneDangling(tool)
}
