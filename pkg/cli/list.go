package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xeonx/timeago"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List configured distributions",
		RunE:    list,
		Args:    cobra.NoArgs,
		Aliases: []string{"ls"},
	}

	cmd.Flags().BoolP("quiet", "q", false, "Quiet output, only display names")

	return cmd
}

func list(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	if quiet {
		for _, name := range cfg.DistributionNames() {
			fmt.Println(name)
		}
		return nil
	}

	t, err := newTester(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBASE IMAGE\tPACKAGE MANAGER\tLAST TEST\tSTATUS")
	for _, name := range cfg.DistributionNames() {
		dist := cfg.Distribution(name)
		lastTest := "never"
		status := "-"
		if record, err := t.Latest(name); err == nil {
			lastTest = timeago.English.Format(record.Timestamp)
			if record.Passed() {
				status = "passed"
			} else {
				status = "failed"
			}
		}
		manager := dist.PackageManager
		if manager == "" {
			manager = "apt"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, dist.Image(), manager, lastTest, status)
	}
	return w.Flush()
}
