package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newVariablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variables",
		Short: "Show configured variables and their resolved values",
		RunE:  showVariables,
		Args:  cobra.NoArgs,
	}
}

func showVariables(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(cfg.Variables))
	for name := range cfg.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE\tRESOLVED")
	for _, name := range names {
		raw := cfg.Variables[name]
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, raw, cfg.Substitute(raw))
	}
	return w.Flush()
}
