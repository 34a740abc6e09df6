package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long:  "Print the configuration in effect after defaults, config files and validation, as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd)
		},
	}
}

func runConfig(cmd *cobra.Command) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	out, err := cfg.YAML()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), string(out))

	return nil
}
