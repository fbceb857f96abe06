package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodger/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration a new game would use, as YAML.

The file given with --config, or the first of ~/.dodger/configs/dodger.yaml
and ./configs/dodger.yaml that exists, is merged over the built-in defaults. The output is a complete config file
that can be edited and passed back with --config.

Examples:
  dodger config > dodger.yaml
  dodger config --config ./dodger.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadDodger(flagConfig)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
