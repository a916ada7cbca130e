package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE:  validate,
		Args:  cobra.NoArgs,
	}
}

func validate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	errs, warnings := cfg.Validate()
	for _, warning := range warnings {
		console.Warn(warning)
	}
	for _, e := range errs {
		console.Error(e)
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration %s has %d error(s)", cfg.Filename(), len(errs))
	}

	console.Infof("Configuration %s is valid: %d distribution(s)", cfg.Filename(), len(cfg.Distributions))
	return nil
}
