package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

func newLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs <distribution>",
		Short: "Show the most recent build log for a distribution",
		RunE:  showLogs,
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().Bool("full", false, "Show the full append-only log instead of the latest build")

	return cmd
}

func showLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return err
	}

	t, err := newTester(cfg)
	if err != nil {
		return err
	}

	name := args[0]
	if full {
		text, err := t.Store().FullLog(name)
		if err != nil {
			return err
		}
		console.Output(text)
		return nil
	}

	record, err := t.Latest(name)
	if err != nil {
		return err
	}

	console.Outputf("Build of %s at %s", record.Distribution, record.Timestamp.Format(time.RFC3339))
	if record.HasReturnCode {
		console.Outputf("Return code: %d", record.ReturnCode)
	}
	if record.Passed() {
		console.Output("Result: PASSED")
	} else {
		console.Output("Result: FAILED")
	}
	if record.Stdout != "" {
		console.Output("--- stdout ---")
		console.Output(record.Stdout)
	}
	if record.Stderr != "" {
		console.Output("--- stderr ---")
		console.Output(record.Stderr)
	}
	return nil
}
