package cmd

import (
	"errors"
	"fmt"

	"github.com/phanxgames/floorcal"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a calibration and print its fingerprint",
	Long: `Loads the calibration, checks it for the selected variant and prints
every problem found. The fingerprint identifies the effective calibration and
changes whenever any value does.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	out := cmd.OutOrStdout()
	cfg, err := loadConfig(log)
	if err != nil {
		var cerr *floorcal.ConfigError
		if errors.As(err, &cerr) {
			for _, p := range cerr.Problems() {
				fmt.Fprintf(out, "  - %v\n", p)
			}
		}
		return err
	}

	fmt.Fprintf(out, "ok: %s\n", cfg.Name)
	fmt.Fprintf(out, "variant:     %s\n", cfg.Variant)
	fmt.Fprintf(out, "fingerprint: %s\n", cfg.Fingerprint())
	return nil
}
