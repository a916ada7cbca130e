package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

func newInteractiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cli",
		Short: "Interactive menu for testing distributions",
		RunE:  interactive,
		Args:  cobra.NoArgs,
	}
	addBuildFlags(cmd)
	return cmd
}

func interactive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := newTester(cfg)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		console.Output("")
		console.Output("mirror-test")
		console.Output("  1) test all distributions")
		console.Output("  2) test one distribution")
		console.Output("  3) show latest log")
		console.Output("  4) show dockerfile")
		console.Output("  q) quit")
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF means the pipe closed; leave quietly.
			return nil
		}

		switch strings.TrimSpace(line) {
		case "1":
			for _, name := range cfg.DistributionNames() {
				printResult(t.Test(cmd.Context(), name))
			}
		case "2":
			name, ok := pickDistribution(reader, cfg.DistributionNames())
			if ok {
				printResult(t.Test(cmd.Context(), name))
			}
		case "3":
			name, ok := pickDistribution(reader, cfg.DistributionNames())
			if !ok {
				continue
			}
			record, err := t.Latest(name)
			if err != nil {
				console.Warnf("%s", err)
				continue
			}
			console.Output(record.Stdout)
			if record.Stderr != "" {
				console.Output(record.Stderr)
			}
		case "4":
			name, ok := pickDistribution(reader, cfg.DistributionNames())
			if !ok {
				continue
			}
			script, err := t.Dockerfile(name)
			if err != nil {
				console.Warnf("%s", err)
				continue
			}
			console.Output(script)
		case "q", "quit", "exit":
			return nil
		default:
			console.Warn("Unknown choice")
		}
	}
}

func pickDistribution(reader *bufio.Reader, names []string) (string, bool) {
	for i, name := range names {
		console.Outputf("  %d) %s", i+1, name)
	}
	fmt.Print("distribution> ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", false
	}
	choice := strings.TrimSpace(line)

	for i, name := range names {
		if choice == name || choice == fmt.Sprintf("%d", i+1) {
			return name, true
		}
	}
	console.Warnf("No such distribution: %s", choice)
	return "", false
}
