package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mirror-tools/mirror-test/pkg/audit"
	"github.com/mirror-tools/mirror-test/pkg/global"
	"github.com/mirror-tools/mirror-test/pkg/server"
)

var portFlag int

func newServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gui",
		Short:   "Start the web dashboard",
		RunE:    startServer,
		Args:    cobra.NoArgs,
		Aliases: []string{"server"},
	}

	cmd.Flags().IntVar(&portFlag, "port", global.DefaultPort, "Server port")
	addBuildFlags(cmd)

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	t, err := newTester(cfg)
	if err != nil {
		return err
	}

	auditLog := audit.NewLogger(filepath.Join(dataDir(cfg), "audit.log"))

	return server.NewServer(portFlag, t, auditLog).Start()
}
