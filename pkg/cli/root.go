package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mirror-tools/mirror-test/pkg/buildlog"
	"github.com/mirror-tools/mirror-test/pkg/config"
	"github.com/mirror-tools/mirror-test/pkg/global"
	"github.com/mirror-tools/mirror-test/pkg/tester"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

var (
	configFlag    string
	timeoutFlag   int
	noCleanupFlag bool
	noCacheFlag   bool
	buildToolFlag string
)

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:     "mirror-test [distribution...]",
		Short:   "Test local package repository mirrors by building throwaway containers against them",
		Version: fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime),
		Args:    cobra.ArbitraryArgs,
		RunE:    runTests,
		// This stops errors being printed because we print them in cmd/mirror-test/main.go
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.Verbose {
				console.SetLevel(console.DebugLevel)
			} else if global.Quiet {
				console.SetLevel(console.WarnLevel)
			}
			cmd.SilenceUsage = true
		},
		SilenceErrors: true,
	}
	setPersistentFlags(&rootCmd)
	addBuildFlags(&rootCmd)

	rootCmd.AddCommand(
		newListCommand(),
		newVariablesCommand(),
		newValidateCommand(),
		newLogsCommand(),
		newDockerfileCommand(),
		newCleanupCommand(),
		newServerCommand(),
		newInteractiveCommand(),
	)

	return &rootCmd, nil
}

func setPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&global.Quiet, "quiet", "q", false, "Warnings and errors only")
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to configuration file (default ~/.config/mirror-test/mirror-test.yaml)")
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&timeoutFlag, "timeout", int(global.DefaultTimeout.Seconds()), "Build timeout in seconds")
	cmd.Flags().BoolVar(&noCleanupFlag, "no-cleanup", false, "Keep images after successful tests")
	cmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Build without layer cache")
	cmd.Flags().StringVar(&buildToolFlag, "build-tool", "", "Container build tool (default "+global.DefaultBuildTool+")")
}

func loadConfig() (*config.Config, error) {
	path := configFlag
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// dataDir is where build logs, history and the audit log live: a logs/
// directory next to the configuration file.
func dataDir(cfg *config.Config) string {
	return filepath.Join(filepath.Dir(cfg.Filename()), "logs")
}

func newTester(cfg *config.Config) (*tester.Tester, error) {
	dir := dataDir(cfg)
	store, err := buildlog.NewStore(dir)
	if err != nil {
		return nil, err
	}
	history := buildlog.NewHistory(filepath.Join(dir, "build-history.json"))
	if err := history.Prune(cfg.DistributionNames()); err != nil {
		console.Warnf("Failed to prune build history: %s", err)
	}
	return tester.New(cfg, store, history, tester.Options{
		BuildTool: buildToolFlag,
		Timeout:   time.Duration(timeoutFlag) * time.Second,
		NoCache:   noCacheFlag,
		Cleanup:   !noCleanupFlag,
	}), nil
}
