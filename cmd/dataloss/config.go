package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dataloss/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after applying the config file and command
line flags, as YAML. Redirect it to ~/.dataloss/config.yaml to start a
custom config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogger(cmd.ErrOrStderr()); err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := config.Marshal(*cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
