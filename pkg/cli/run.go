package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logrusorgru/aurora"

	"github.com/mirror-tools/mirror-test/pkg/tester"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

func runTests(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 1 && names[0] == "all" {
		names = nil
	}
	if len(names) == 0 {
		names = cfg.DistributionNames()
	}
	if len(names) == 0 {
		return fmt.Errorf("no distributions configured in %s", cfg.Filename())
	}

	t, err := newTester(cfg)
	if err != nil {
		return err
	}

	results := t.TestMany(cmd.Context(), names)

	failed := 0
	for _, name := range names {
		result := results[name]
		printResult(result)
		if !result.Passed {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d distribution tests failed", failed, len(names))
	}
	console.Infof("All %d distribution tests passed", len(names))
	return nil
}

func printResult(result tester.Result) {
	if result.Passed {
		console.Outputf("%s %s", aurora.Green("PASS"), result.Distribution)
		return
	}
	console.Outputf("%s %s", aurora.Red("FAIL"), result.Distribution)
	if result.Err != nil {
		console.Warnf("  %s", result.Err)
		return
	}
	if result.Record != nil {
		console.Warnf("  return code %d", result.Record.ReturnCode)
	}
}
