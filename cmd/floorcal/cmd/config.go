package cmd

import (
	"fmt"

	"github.com/phanxgames/floorcal"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect calibration settings",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective calibration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg, err := loadConfig(log)
		if err != nil {
			return err
		}
		return cfg.WriteYAML(cmd.OutOrStdout())
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys accepted in .env and .cal calibration files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range floorcal.EnvKeys() {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
	},
}

func init() {
	configCmd.AddCommand(configDumpCmd, configKeysCmd)
	rootCmd.AddCommand(configCmd)
}
