package cli

import (
	"github.com/spf13/cobra"

	"github.com/mirror-tools/mirror-test/pkg/dockerfile"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

func newDockerfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dockerfile <distribution>",
		Short: "Print the Dockerfile that would be built for a distribution",
		RunE:  showDockerfile,
		Args:  cobra.ExactArgs(1),
	}
}

func showDockerfile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	script, err := dockerfile.GenerateFromConfig(cfg, args[0])
	if err != nil {
		return err
	}
	console.Output(script)
	return nil
}
